// Package markdown compiles a markdown document into an htmlnode tree.
//
// A document is split into blocks, each block is classified, its block
// syntax is stripped, and the remaining text goes through the inline
// pipeline. Block nodes are collected under a single <div> root.
package markdown

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdsite/internal/block"
	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
)

// ErrNoHeading indicates the document has no "# " title line.
var ErrNoHeading = errors.New("no h1 heading found")

// RootTag is the tag of the node wrapping a whole document.
const RootTag = "div"

// parallelThreshold is the block count below which parallel compilation is
// not worth the goroutines.
const parallelThreshold = 16

// Option configures document compilation.
type Option func(*options)

type options struct {
	parallel bool
	workers  int
}

// WithParallel compiles blocks concurrently. Output order is unchanged.
// workers <= 0 means GOMAXPROCS.
func WithParallel(workers int) Option {
	return func(o *options) {
		o.parallel = true
		o.workers = workers
	}
}

// ToHTMLNode compiles a full document into a <div> node.
func ToHTMLNode(document string, opts ...Option) (*htmlnode.Parent, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	blocks := block.Split(document)
	children := make([]htmlnode.Node, len(blocks))

	if !o.parallel || len(blocks) < parallelThreshold {
		for i, text := range blocks {
			node, err := BlockToNode(text)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i+1, err)
			}
			children[i] = node
		}
		return htmlnode.NewParent(RootTag, children), nil
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, text := range blocks {
		g.Go(func() error {
			node, err := BlockToNode(text)
			if err != nil {
				return fmt.Errorf("block %d: %w", i+1, err)
			}
			children[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return htmlnode.NewParent(RootTag, children), nil
}

// BlockToNode classifies a single trimmed block and compiles it.
func BlockToNode(text string) (*htmlnode.Parent, error) {
	typ := block.Classify(text)
	switch typ.Kind {
	case block.Heading:
		return headingToNode(text, typ.Level)
	case block.CodeFence:
		return codeToNode(text)
	case block.Quote:
		return quoteToNode(text)
	case block.UnorderedList:
		return unorderedListToNode(text)
	case block.OrderedList:
		return orderedListToNode(text)
	default:
		return paragraphToNode(text)
	}
}

func headingToNode(text string, level int) (*htmlnode.Parent, error) {
	_, content, _ := block.ParseHeading(text)
	children, err := inline.ToHTMLNodes(content)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(fmt.Sprintf("h%d", level), children), nil
}

// codeToNode keeps the fenced content verbatim: no inline pass. The opening
// fence line, including any info string, is dropped.
func codeToNode(text string) (*htmlnode.Parent, error) {
	inner := strings.TrimSuffix(text, block.Fence)
	if _, body, found := strings.Cut(inner, "\n"); found {
		inner = body
	} else {
		inner = strings.TrimPrefix(inner, block.Fence)
	}

	code, err := inline.ToNode(inline.Span{Text: inner, Kind: inline.Code})
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("pre", []htmlnode.Node{code}), nil
}

func quoteToNode(text string) (*htmlnode.Parent, error) {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, block.QuoteMarker))
		if line != "" {
			parts = append(parts, line)
		}
	}
	children, err := inline.ToHTMLNodes(strings.Join(parts, " "))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("blockquote", children), nil
}

func unorderedListToNode(text string) (*htmlnode.Parent, error) {
	lines := strings.Split(text, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		content, _ := block.ParseUnorderedItem(line)
		item, err := listItem(content)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewParent("ul", items), nil
}

func orderedListToNode(text string) (*htmlnode.Parent, error) {
	lines := strings.Split(text, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		_, content, _ := block.ParseOrderedItem(line)
		item, err := listItem(content)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewParent("ol", items), nil
}

func listItem(content string) (*htmlnode.Parent, error) {
	children, err := inline.ToHTMLNodes(content)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("li", children), nil
}

func paragraphToNode(text string) (*htmlnode.Parent, error) {
	children, err := inline.ToHTMLNodes(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("p", children), nil
}

// ExtractTitle returns the text of the first "# " line in the document.
// Deeper headings ("## ...") do not count.
func ExtractTitle(document string) (string, error) {
	for _, line := range strings.Split(document, "\n") {
		rest, found := strings.CutPrefix(line, "# ")
		if !found {
			continue
		}
		if title := strings.TrimSpace(rest); title != "" {
			return title, nil
		}
	}
	return "", ErrNoHeading
}
