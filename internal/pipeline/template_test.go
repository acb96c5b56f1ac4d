package pipeline

import (
	"errors"
	"testing"
)

func TestFillTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    string
		title   string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "both markers",
			tmpl:    "<title>{{ Title }}</title><article>{{ Content }}</article>",
			title:   "Home",
			content: "<div><p>hi</p></div>",
			want:    "<title>Home</title><article><div><p>hi</p></div></article>",
		},
		{
			name:    "repeated markers",
			tmpl:    "{{ Title }}|{{ Title }}|{{ Content }}|{{ Content }}",
			title:   "T",
			content: "C",
			want:    "T|T|C|C",
		},
		{
			name:    "no title marker",
			tmpl:    "<main>{{ Content }}</main>",
			title:   "ignored",
			content: "x",
			want:    "<main>x</main>",
		},
		{
			name:    "markers in values are not expanded",
			tmpl:    "<h1>{{ Title }}</h1>{{ Content }}",
			title:   "{{ Content }}",
			content: "{{ Title }}",
			want:    "<h1>{{ Content }}</h1>{{ Title }}",
		},
		{
			name:    "marker spacing matters",
			tmpl:    "{{Title}}{{ Content }}",
			title:   "T",
			content: "C",
			want:    "{{Title}}C",
		},
		{
			name:    "missing content marker",
			tmpl:    "<title>{{ Title }}</title>",
			wantErr: ErrTemplateMissingContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FillTemplate(tt.tmpl, tt.title, tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FillTemplate() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FillTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}
