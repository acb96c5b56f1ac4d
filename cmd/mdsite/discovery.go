package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for page discovery.
var (
	ErrContentNotFound = errors.New("content directory not found")
	ErrNoPages         = errors.New("no markdown pages found")
)

// markdownExts are the source extensions turned into pages.
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Page is one markdown source and the HTML file it becomes.
type Page struct {
	SourcePath string // Markdown file under the content directory
	OutputPath string // HTML file under the public directory
	Key        string // OutputPath relative to the public directory, slash-separated
}

// discoverPages walks contentDir and mirrors every markdown file into
// publicDir with an .html extension. Results are in lexical order.
func discoverPages(contentDir, publicDir string) ([]Page, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentDir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrContentNotFound, contentDir)
	}

	var pages []Page
	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !markdownExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		out := outputRelPath(rel)
		pages = append(pages, Page{
			SourcePath: path,
			OutputPath: filepath.Join(publicDir, out),
			Key:        filepath.ToSlash(out),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, contentDir)
	}
	return pages, nil
}

// outputRelPath swaps the markdown extension of rel for .html, so
// "blog/post.md" becomes "blog/post.html" and "index.md" becomes "index.html".
func outputRelPath(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
}
