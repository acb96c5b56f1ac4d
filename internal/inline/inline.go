// Package inline splits markdown text into typed spans (bold, italic, code,
// images, links) and maps those spans to HTML leaf nodes.
//
// Splitting runs as a sequence of passes. Each pass only rescans spans that
// are still Plain, so the output of one pass is safe input for the next:
//
//	Plain(text) -> "**" bold -> "_" italic -> "`" code -> images -> links
//
// The passes do not validate delimiter balance. An unterminated delimiter
// still alternates plain/typed parts mechanically.
package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-mdsite/internal/htmlnode"
)

// ErrUnknownKind indicates a span kind with no HTML mapping.
var ErrUnknownKind = errors.New("unknown span kind")

// Delimiters for the delimiter passes, in pipeline order.
const (
	DelimBold   = "**"
	DelimItalic = "_"
	DelimCode   = "`"
)

// Kind is the type of an inline span.
type Kind int

// Span kinds.
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var kindNames = [...]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Span is a typed fragment of inline text. Target holds the URL of a Link or
// Image span and is empty otherwise. Spans compare with ==.
type Span struct {
	Text   string
	Kind   Kind
	Target string
}

func (s Span) String() string {
	if s.Target != "" {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.Target)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}

// Ref is a markdown reference extracted from text: the alt text or label,
// and the URL.
type Ref struct {
	Text string
	URL  string
}

// markdown returns the source syntax of the reference.
func (r Ref) markdown(image bool) string {
	s := "[" + r.Text + "](" + r.URL + ")"
	if image {
		return "!" + s
	}
	return s
}

var (
	// ![alt](url), both captures non-greedy.
	imagePattern = regexp.MustCompile(`!\[(.+?)\]\((.+?)\)`)

	// [label](url) anchored at the scan position. The "not preceded by !"
	// rule is applied by the scanner since RE2 has no lookbehind.
	linkPattern = regexp.MustCompile(`^\[(.+?)\]\((.+?)\)`)
)

// TextToSpans runs the full inline pipeline over text.
func TextToSpans(text string) []Span {
	spans := []Span{{Text: text, Kind: Plain}}
	spans = SplitDelimiter(spans, DelimBold, Bold)
	spans = SplitDelimiter(spans, DelimItalic, Italic)
	spans = SplitDelimiter(spans, DelimCode, Code)
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans
}

// SplitDelimiter re-splits every Plain span on each occurrence of delim.
// Even-indexed parts stay Plain, odd-indexed parts become kind. Empty parts
// are dropped. Spans of any other kind pass through untouched.
func SplitDelimiter(spans []Span, delim string, kind Kind) []Span {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain || delim == "" {
			out = append(out, span)
			continue
		}

		for i, part := range strings.Split(span.Text, delim) {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, Span{Text: part, Kind: Plain})
			} else {
				out = append(out, Span{Text: part, Kind: kind})
			}
		}
	}
	return out
}

// ExtractImages returns every ![alt](url) in text, left to right.
func ExtractImages(text string) []Ref {
	matches := imagePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Ref{Text: m[1], URL: m[2]})
	}
	return refs
}

// ExtractLinks returns every [label](url) in text that is not preceded by
// '!', left to right.
func ExtractLinks(text string) []Ref {
	var refs []Ref
	for i := 0; i < len(text); i++ {
		if text[i] != '[' || (i > 0 && text[i-1] == '!') {
			continue
		}
		m := linkPattern.FindStringSubmatchIndex(text[i:])
		if m == nil {
			continue
		}
		refs = append(refs, Ref{
			Text: text[i+m[2] : i+m[3]],
			URL:  text[i+m[4] : i+m[5]],
		})
		// Matches do not overlap; resume after this one.
		i += m[1] - 1
	}
	return refs
}

// SplitImages splits image references out of every Plain span.
func SplitImages(spans []Span) []Span {
	return splitRefs(spans, Image, ExtractImages)
}

// SplitLinks splits link references out of every Plain span.
func SplitLinks(spans []Span) []Span {
	return splitRefs(spans, Link, ExtractLinks)
}

func splitRefs(spans []Span, kind Kind, extract func(string) []Ref) []Span {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		rest := span.Text
		for _, ref := range extract(span.Text) {
			before, after, found := cutRef(rest, ref.markdown(kind == Image), kind == Image)
			if !found {
				break
			}
			if before != "" {
				out = append(out, Span{Text: before, Kind: Plain})
			}
			out = append(out, Span{Text: ref.Text, Kind: kind, Target: ref.URL})
			rest = after
		}
		if rest != "" {
			out = append(out, Span{Text: rest, Kind: Plain})
		}
	}
	return out
}

// cutRef is strings.Cut for a reference. Link references never match right
// after a '!', which would be the tail of an image.
func cutRef(s, ref string, image bool) (before, after string, found bool) {
	from := 0
	for {
		i := strings.Index(s[from:], ref)
		if i < 0 {
			return s, "", false
		}
		i += from
		if image || i == 0 || s[i-1] != '!' {
			return s[:i], s[i+len(ref):], true
		}
		from = i + 1
	}
}

// ToNode converts a span to its HTML leaf.
func ToNode(span Span) (*htmlnode.Leaf, error) {
	switch span.Kind {
	case Plain:
		return htmlnode.NewText(span.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", span.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", span.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", span.Text), nil
	case Link:
		return htmlnode.NewLeaf("a", span.Text, htmlnode.Attr("href", span.Target)), nil
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr("src", span.Target),
			htmlnode.Attr("alt", span.Text),
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, span.Kind)
	}
}

// ToNodes converts spans to HTML nodes, preserving order.
func ToNodes(spans []Span) ([]htmlnode.Node, error) {
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		node, err := ToNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ToHTMLNodes runs the inline pipeline over text and converts the result.
func ToHTMLNodes(text string) ([]htmlnode.Node, error) {
	return ToNodes(TextToSpans(text))
}
