package inline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func plain(s string) Span { return Span{Text: s, Kind: Plain} }

// ---------------------------------------------------------------------------
// TestSplitDelimiter - Delimiter passes
// ---------------------------------------------------------------------------

func TestSplitDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []Span
		delim string
		kind  Kind
		want  []Span
	}{
		{
			name:  "no delimiter is a no-op",
			spans: []Span{plain("This is raw text")},
			delim: DelimBold,
			kind:  Bold,
			want:  []Span{plain("This is raw text")},
		},
		{
			name:  "several spans without delimiter",
			spans: []Span{plain("This is raw text"), plain("This is a second raw text")},
			delim: DelimCode,
			kind:  Code,
			want:  []Span{plain("This is raw text"), plain("This is a second raw text")},
		},
		{
			name:  "single balanced occurrence",
			spans: []Span{plain("This is a text with a **bold word** in the middle.")},
			delim: DelimBold,
			kind:  Bold,
			want: []Span{
				plain("This is a text with a "),
				{Text: "bold word", Kind: Bold},
				plain(" in the middle."),
			},
		},
		{
			name:  "trailing occurrence drops empty tail",
			spans: []Span{plain("a **bold word** and **second bold part.**")},
			delim: DelimBold,
			kind:  Bold,
			want: []Span{
				plain("a "),
				{Text: "bold word", Kind: Bold},
				plain(" and "),
				{Text: "second bold part.", Kind: Bold},
			},
		},
		{
			name:  "adjacent occurrences",
			spans: []Span{plain("a **first part ****second part** follows.")},
			delim: DelimBold,
			kind:  Bold,
			want: []Span{
				plain("a "),
				{Text: "first part ", Kind: Bold},
				{Text: "second part", Kind: Bold},
				plain(" follows."),
			},
		},
		{
			name:  "leading occurrence",
			spans: []Span{plain("_italic_ start")},
			delim: DelimItalic,
			kind:  Italic,
			want:  []Span{{Text: "italic", Kind: Italic}, plain(" start")},
		},
		{
			name:  "unterminated delimiter absorbs the rest",
			spans: []Span{plain("open `code and more")},
			delim: DelimCode,
			kind:  Code,
			want:  []Span{plain("open "), {Text: "code and more", Kind: Code}},
		},
		{
			name:  "typed spans are not rescanned",
			spans: []Span{{Text: "has _underscores_", Kind: Code}, plain("x _y_")},
			delim: DelimItalic,
			kind:  Italic,
			want: []Span{
				{Text: "has _underscores_", Kind: Code},
				plain("x "),
				{Text: "y", Kind: Italic},
			},
		},
		{
			name:  "empty plain span disappears",
			spans: []Span{plain("")},
			delim: DelimBold,
			kind:  Bold,
			want:  []Span{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitDelimiter(tt.spans, tt.delim, tt.kind)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitDelimiter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitDelimiter_Idempotent(t *testing.T) {
	t.Parallel()

	input := []Span{plain("one **two** three **four**")}
	once := SplitDelimiter(input, DelimBold, Bold)
	twice := SplitDelimiter(once, DelimBold, Bold)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second pass changed output (-once +twice):\n%s", diff)
	}
}

func TestSplitDelimiter_PassOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "bold italic code",
			text: "This is a text with **bold**, _italic_ and `code` words.",
			want: []Span{
				plain("This is a text with "), {Text: "bold", Kind: Bold},
				plain(", "), {Text: "italic", Kind: Italic},
				plain(" and "), {Text: "code", Kind: Code},
				plain(" words."),
			},
		},
		{
			name: "code bold italic",
			text: "This is a text with `code`, **bold** and _italic_ words.",
			want: []Span{
				plain("This is a text with "), {Text: "code", Kind: Code},
				plain(", "), {Text: "bold", Kind: Bold},
				plain(" and "), {Text: "italic", Kind: Italic},
				plain(" words."),
			},
		},
		{
			name: "italic code bold",
			text: "This is a text with _italic_, `code` and **bold** words.",
			want: []Span{
				plain("This is a text with "), {Text: "italic", Kind: Italic},
				plain(", "), {Text: "code", Kind: Code},
				plain(" and "), {Text: "bold", Kind: Bold},
				plain(" words."),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitDelimiter([]Span{plain(tt.text)}, DelimBold, Bold)
			got = SplitDelimiter(got, DelimItalic, Italic)
			got = SplitDelimiter(got, DelimCode, Code)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("delimiter passes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExtract - Image and link reference extraction
// ---------------------------------------------------------------------------

func TestExtractImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Ref
	}{
		{
			name: "images but not links",
			text: "This is text with an ![image](https://i.imgur.com/zjjcJKZ.png), ![another one](https://url.com) and one [link](dumblink.com).",
			want: []Ref{
				{Text: "image", URL: "https://i.imgur.com/zjjcJKZ.png"},
				{Text: "another one", URL: "https://url.com"},
			},
		},
		{
			name: "no images",
			text: "This is raw text with a **bold** word",
			want: nil,
		},
		{
			name: "bare link is never an image",
			text: "[x](y)",
			want: nil,
		},
		{
			name: "non-greedy captures",
			text: "![a](b)(c) ![d](e)",
			want: []Ref{{Text: "a", URL: "b"}, {Text: "d", URL: "e"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ExtractImages(tt.text)); diff != "" {
				t.Errorf("ExtractImages() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Ref
	}{
		{
			name: "links but not images",
			text: "This is text with an ![image](https://i.imgur.com/zjjcJKZ.png), ![another one](https://url.com) and one [link](dumblink.com).",
			want: []Ref{{Text: "link", URL: "dumblink.com"}},
		},
		{
			name: "image is never a link",
			text: "![x](y)",
			want: nil,
		},
		{
			name: "several links in order",
			text: "[to boot dev](https://www.boot.dev) and [to youtube](https://www.youtube.com/@bootdotdev)",
			want: []Ref{
				{Text: "to boot dev", URL: "https://www.boot.dev"},
				{Text: "to youtube", URL: "https://www.youtube.com/@bootdotdev"},
			},
		},
		{
			name: "link after a rejected image opener",
			text: "![a [c](d)",
			want: []Ref{{Text: "c", URL: "d"}},
		},
		{
			name: "unclosed bracket",
			text: "[not a link",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ExtractLinks(tt.text)); diff != "" {
				t.Errorf("ExtractLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSplitRefs - Image and link passes
// ---------------------------------------------------------------------------

func TestSplitImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []Span
		want  []Span
	}{
		{
			name: "two images",
			spans: []Span{plain("This is text with an ![image](https://i.imgur.com/zjjcJKZ.png) and another ![second image](https://i.imgur.com/3elNhQu.png)")},
			want: []Span{
				plain("This is text with an "),
				{Text: "image", Kind: Image, Target: "https://i.imgur.com/zjjcJKZ.png"},
				plain(" and another "),
				{Text: "second image", Kind: Image, Target: "https://i.imgur.com/3elNhQu.png"},
			},
		},
		{
			name:  "only an image",
			spans: []Span{plain("![alt](u.png)")},
			want:  []Span{{Text: "alt", Kind: Image, Target: "u.png"}},
		},
		{
			name:  "same image twice keeps text between",
			spans: []Span{plain("![a](b) mid ![a](b) end")},
			want: []Span{
				{Text: "a", Kind: Image, Target: "b"},
				plain(" mid "),
				{Text: "a", Kind: Image, Target: "b"},
				plain(" end"),
			},
		},
		{
			name:  "typed spans pass through",
			spans: []Span{{Text: "![a](b)", Kind: Code}},
			want:  []Span{{Text: "![a](b)", Kind: Code}},
		},
		{
			name:  "no image",
			spans: []Span{plain("just text")},
			want:  []Span{plain("just text")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, SplitImages(tt.spans)); diff != "" {
				t.Errorf("SplitImages() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []Span
		want  []Span
	}{
		{
			name:  "link with trailing text",
			spans: []Span{plain("go [home](/) now")},
			want: []Span{
				plain("go "),
				{Text: "home", Kind: Link, Target: "/"},
				plain(" now"),
			},
		},
		{
			name:  "image syntax is skipped",
			spans: []Span{plain("![a](b) and [a](b)")},
			want: []Span{
				plain("![a](b) and "),
				{Text: "a", Kind: Link, Target: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, SplitLinks(tt.spans)); diff != "" {
				t.Errorf("SplitLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTextToSpans - Full inline pipeline
// ---------------------------------------------------------------------------

func TestTextToSpans(t *testing.T) {
	t.Parallel()

	text := "This is **text** with an _italic_ word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)"
	want := []Span{
		plain("This is "),
		{Text: "text", Kind: Bold},
		plain(" with an "),
		{Text: "italic", Kind: Italic},
		plain(" word and a "),
		{Text: "code block", Kind: Code},
		plain(" and an "),
		{Text: "obi wan image", Kind: Image, Target: "https://i.imgur.com/fJRm4Vk.jpeg"},
		plain(" and a "),
		{Text: "link", Kind: Link, Target: "https://boot.dev"},
	}

	got := TextToSpans(text)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TextToSpans() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestToNode - Span to HTML leaf mapping
// ---------------------------------------------------------------------------

func TestToNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		span Span
		want string
	}{
		{name: "plain", span: plain("text"), want: "text"},
		{name: "bold", span: Span{Text: "b", Kind: Bold}, want: "<b>b</b>"},
		{name: "italic", span: Span{Text: "i", Kind: Italic}, want: "<i>i</i>"},
		{name: "code", span: Span{Text: "c", Kind: Code}, want: "<code>c</code>"},
		{name: "link", span: Span{Text: "l", Kind: Link, Target: "/u"}, want: `<a href="/u">l</a>`},
		{name: "image", span: Span{Text: "alt", Kind: Image, Target: "/i.png"}, want: `<img src="/i.png" alt="alt"></img>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, err := ToNode(tt.span)
			if err != nil {
				t.Fatalf("ToNode() unexpected error: %v", err)
			}
			got, err := node.Render()
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToNodes_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := ToNodes([]Span{plain("ok"), {Text: "x", Kind: Kind(99)}})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ToNodes() error = %v, want %v", err, ErrUnknownKind)
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := Bold.String(); got != "bold" {
		t.Errorf("Bold.String() = %q, want %q", got, "bold")
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q, want %q", got, "Kind(42)")
	}
}
