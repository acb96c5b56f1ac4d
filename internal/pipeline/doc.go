// Package pipeline implements the page generation stages around the
// markdown compiler.
//
// Stages, in the order a page goes through them:
//   - Markdown preprocessing (line ending normalization, BOM removal)
//   - Markdown to HTML fragment via the native compiler or goldmark
//   - Template filling ({{ Title }} and {{ Content }} markers)
//   - Stylesheet injection
//   - Base path rewriting of root-relative links
//
// File discovery and writing are handled by the CLI. This package only
// transforms strings.
package pipeline
