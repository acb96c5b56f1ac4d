package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewrittenAttrs are the attributes holding site-internal URLs.
var rewrittenAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

// NormalizeBasePath returns basePath with exactly one leading and one
// trailing slash. An empty path becomes "/".
func NormalizeBasePath(basePath string) string {
	trimmed := strings.Trim(strings.TrimSpace(basePath), "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

// RewriteBasePath prefixes root-relative href and src values with basePath,
// so "/blog/" becomes "/repo/blog/" when the site is served under "/repo/".
// An empty or "/" base path returns the HTML unchanged.
//
// Does NOT rewrite:
//   - Relative paths ("img.png", "../x")
//   - Absolute or protocol-relative URLs ("https://", "//cdn")
//   - Anchors and query-only references ("#top", "?q")
func RewriteBasePath(htmlContent, basePath string) (string, error) {
	prefix := NormalizeBasePath(basePath)
	if prefix == "/" {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, prefix)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites root-relative URLs.
func rewriteNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if !rewrittenAttrs[attr.Key] || !isRootRelative(attr.Val) {
				continue
			}
			n.Attr[i].Val = prefix + strings.TrimPrefix(attr.Val, "/")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, prefix)
	}
}

// isRootRelative reports whether path starts with a single slash.
func isRootRelative(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
