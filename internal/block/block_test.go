package block_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdsite/internal/block"
)

// ---------------------------------------------------------------------------
// TestSplit - Blank-line block splitting
// ---------------------------------------------------------------------------

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name:     "empty document",
			document: "",
			want:     nil,
		},
		{
			name:     "only blank lines",
			document: "\n\n  \n\t\n",
			want:     nil,
		},
		{
			name: "paragraphs and list",
			document: `
This is **bolded** paragraph

This is another paragraph with _italic_ text and ` + "`code`" + ` here
This is the same paragraph on a new line

- This is a list
- with items
`,
			want: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{
			name:     "runs of blank lines collapse",
			document: "# Title\n\n\n\n\nBody",
			want:     []string{"# Title", "Body"},
		},
		{
			name:     "whitespace-only line separates",
			document: "one\n   \ntwo",
			want:     []string{"one", "two"},
		},
		{
			name:     "blocks are trimmed",
			document: "   indented first\nsecond   \n\n",
			want:     []string{"indented first\nsecond"},
		},
		{
			name:     "CRLF line endings",
			document: "a\r\n\r\nb",
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, block.Split(tt.document)); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassify - Ordered classification rules
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want block.Type
	}{
		{name: "h1", text: "# heading", want: block.Type{Kind: block.Heading, Level: 1}},
		{name: "h6", text: "###### heading", want: block.Type{Kind: block.Heading, Level: 6}},
		{name: "seven hashes", text: "####### heading", want: block.Type{Kind: block.Paragraph}},
		{name: "hash without space", text: "#heading", want: block.Type{Kind: block.Paragraph}},
		{name: "hash with empty remainder", text: "#", want: block.Type{Kind: block.Paragraph}},
		{name: "heading line amid others", text: "# heading\nmore text", want: block.Type{Kind: block.Paragraph}},
		{name: "code fence", text: "```\ncode\n```", want: block.Type{Kind: block.CodeFence}},
		{name: "code fence single line", text: "```code```", want: block.Type{Kind: block.CodeFence}},
		{name: "lone fence", text: "```", want: block.Type{Kind: block.Paragraph}},
		{name: "unclosed fence", text: "```\ncode", want: block.Type{Kind: block.Paragraph}},
		{name: "quote", text: "> quote\n> more quote", want: block.Type{Kind: block.Quote}},
		{name: "quote with empty line", text: "> quote\n>\n> more", want: block.Type{Kind: block.Quote}},
		{name: "quote broken by a line", text: "> quote\nnot quote", want: block.Type{Kind: block.Paragraph}},
		{name: "unordered list", text: "- list\n- items", want: block.Type{Kind: block.UnorderedList}},
		{name: "unordered empty item", text: "- list\n- ", want: block.Type{Kind: block.Paragraph}},
		{name: "unordered without space", text: "-list", want: block.Type{Kind: block.Paragraph}},
		{name: "ordered list", text: "1. a\n2. b\n3. c", want: block.Type{Kind: block.OrderedList}},
		{name: "ordered single item", text: "1. only", want: block.Type{Kind: block.OrderedList}},
		{name: "ordered skips a number", text: "1. a\n2. b\n4. c", want: block.Type{Kind: block.Paragraph}},
		{name: "ordered starts at two", text: "2. a\n3. b", want: block.Type{Kind: block.Paragraph}},
		{name: "ordered missing space", text: "1.a\n2.b", want: block.Type{Kind: block.Paragraph}},
		{name: "ordered double digits", text: "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h\n9. i\n10. j", want: block.Type{Kind: block.OrderedList}},
		{name: "paragraph", text: "just some text", want: block.Type{Kind: block.Paragraph}},
		{name: "mixed list markers", text: "- a\n1. b", want: block.Type{Kind: block.Paragraph}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := block.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse - Line parsers shared with the compiler
// ---------------------------------------------------------------------------

func TestParseHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		wantLevel int
		wantText  string
		wantOK    bool
	}{
		{line: "## Heading 2", wantLevel: 2, wantText: "Heading 2", wantOK: true},
		{line: "#  spaced", wantLevel: 1, wantText: " spaced", wantOK: true},
		{line: "# ", wantOK: false},
		{line: "text # not", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			level, text, ok := block.ParseHeading(tt.line)
			if level != tt.wantLevel || text != tt.wantText || ok != tt.wantOK {
				t.Errorf("ParseHeading(%q) = (%d, %q, %v), want (%d, %q, %v)",
					tt.line, level, text, ok, tt.wantLevel, tt.wantText, tt.wantOK)
			}
		})
	}
}

func TestParseOrderedItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		wantN    int
		wantText string
		wantOK   bool
	}{
		{line: "1. first", wantN: 1, wantText: "first", wantOK: true},
		{line: "12. twelfth", wantN: 12, wantText: "twelfth", wantOK: true},
		{line: "1. ", wantOK: false},
		{line: ". none", wantOK: false},
		{line: "a. letter", wantOK: false},
		{line: "99999999999999999999. overflow", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			n, text, ok := block.ParseOrderedItem(tt.line)
			if n != tt.wantN || text != tt.wantText || ok != tt.wantOK {
				t.Errorf("ParseOrderedItem(%q) = (%d, %q, %v), want (%d, %q, %v)",
					tt.line, n, text, ok, tt.wantN, tt.wantText, tt.wantOK)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := block.OrderedList.String(); got != "ordered_list" {
		t.Errorf("OrderedList.String() = %q, want %q", got, "ordered_list")
	}
	if got := block.Kind(-1).String(); got != "Kind(-1)" {
		t.Errorf("Kind(-1).String() = %q, want %q", got, "Kind(-1)")
	}
}
