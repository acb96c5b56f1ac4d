// Package mdsite turns markdown documents into HTML pages for a static site.
//
// # Quick Start
//
//	conv, err := mdsite.New(mdsite.WithTemplate("default"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdsite.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", result.HTML, 0o644)
//
// The result holds the full page (result.HTML), the converted body
// (result.Fragment), and the page title taken from the first "# " line
// (result.Title).
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line ending normalization, BOM removal)
//  2. Title extraction
//  3. Markdown to HTML fragment, with the native compiler or goldmark
//  4. Template filling ({{ Title }} and {{ Content }})
//  5. Stylesheet injection
//  6. Base path rewriting of root-relative links
//
// # Native Markdown Subset
//
// The native engine understands headings (# to ######), fenced code blocks,
// quotes, unordered ("- ") and ordered ("1. ") lists, and paragraphs. Inside
// text it recognizes **bold**, _italic_, `code`, [links](url) and
// ![images](url), without nesting. Anything else is a paragraph. Use
// WithEngine("goldmark") for full CommonMark with GitHub extensions.
//
// For one-off conversions without a template, use ToHTML and ExtractTitle.
package mdsite
