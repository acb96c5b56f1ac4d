package pipeline

import (
	"errors"
	"strings"
)

// Placeholder markers recognized in page templates.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrTemplateMissingContent indicates a page template with nowhere to put
// the rendered content.
var ErrTemplateMissingContent = errors.New("template has no " + ContentPlaceholder + " placeholder")

// FillTemplate replaces every title and content marker in tmpl.
// The content is inserted after the title so a title containing the content
// marker is never expanded.
func FillTemplate(tmpl, title, content string) (string, error) {
	if !strings.Contains(tmpl, ContentPlaceholder) {
		return "", ErrTemplateMissingContent
	}

	r := strings.NewReplacer(
		TitlePlaceholder, title,
		ContentPlaceholder, content,
	)
	return r.Replace(tmpl), nil
}
