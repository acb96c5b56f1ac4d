package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   string
		wantErr error
	}{
		{name: "default style", style: DefaultStyleName},
		{name: "missing style", style: "nonexistent", wantErr: ErrStyleNotFound},
		{name: "empty name", style: "", wantErr: ErrInvalidAssetName},
		{name: "traversal", style: "../templates/default", wantErr: ErrInvalidAssetName},
	}

	loader := NewEmbeddedLoader()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.style)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
			}
			if tt.wantErr == nil && !strings.Contains(got, "body") {
				t.Errorf("LoadStyle(%q) returned unexpected content: %q", tt.style, got)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default template has both markers", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, marker := range []string{"{{ Title }}", "{{ Content }}", "<!DOCTYPE html>", "</head>"} {
			if !strings.Contains(got, marker) {
				t.Errorf("default template missing %q", marker)
			}
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("blog")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	if got := loader.Styles(); !slices.Contains(got, DefaultStyleName) {
		t.Errorf("Styles() = %v, want to contain %q", got, DefaultStyleName)
	}
	if got := loader.Templates(); !slices.Contains(got, DefaultTemplateName) {
		t.Errorf("Templates() = %v, want to contain %q", got, DefaultTemplateName)
	}
}
