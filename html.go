package mdsite

import (
	"github.com/alnah/go-mdsite/internal/markdown"
)

// ToHTML compiles markdown with the native engine and returns the rendered
// fragment, wrapped in a single <div>.
func ToHTML(md string) (string, error) {
	root, err := markdown.ToHTMLNode(md)
	if err != nil {
		return "", err
	}
	return root.Render()
}

// ExtractTitle returns the text of the first "# " line in md.
// Returns ErrNoHeading if there is none.
func ExtractTitle(md string) (string, error) {
	return markdown.ExtractTitle(md)
}
