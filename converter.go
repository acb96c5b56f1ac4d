package mdsite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/markdown"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Converter runs the markdown-to-page pipeline.
// Create with New and call Convert once per page. A Converter holds no
// per-page state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
}

// New creates a Converter. Without options it uses the native engine, the
// embedded default template, and no stylesheet.
// Returns error if the engine is unknown or an asset cannot be resolved.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{engine: EngineNative},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if c.htmlConverter == nil {
		conv, err := pipeline.NewHTMLConverter(c.cfg.engine, c.cfg.parallelBlocks)
		if err != nil {
			return nil, err
		}
		c.htmlConverter = conv
	}

	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	return c, nil
}

// Template returns the resolved page template.
func (c *Converter) Template() string {
	return c.cfg.template
}

// Style returns the resolved stylesheet, empty when none is injected.
func (c *Converter) Style() string {
	return c.cfg.style
}

// Convert runs the full pipeline for one page.
// The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	tmpl := c.cfg.template
	if input.Template != "" {
		tmpl = input.Template
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	title, err := markdown.ExtractTitle(mdContent)
	if err != nil {
		return nil, err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	page, err := pipeline.FillTemplate(tmpl, title, fragment)
	if err != nil {
		return nil, err
	}

	// Converter style first, page CSS last so it can override.
	css := c.cfg.style
	if input.CSS != "" {
		if css != "" {
			css += "\n"
		}
		css += input.CSS
	}
	page = c.cssInjector.InjectCSS(ctx, page, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	page, err = pipeline.RewriteBasePath(page, c.cfg.basePath)
	if err != nil {
		return nil, fmt.Errorf("rewriting base path: %w", err)
	}

	return &Result{
		HTML:     []byte(page),
		Fragment: fragment,
		Title:    title,
	}, nil
}

// resolveTemplate turns the template option (HTML, path, or asset name) into
// template HTML.
func (c *Converter) resolveTemplate() error {
	input := c.cfg.templateInput
	if input == "" {
		input = DefaultTemplate
	}

	var content string
	switch {
	case strings.Contains(input, pipeline.ContentPlaceholder):
		content = input
	case fileutil.IsFilePath(input):
		data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading template file %q: %w", input, err)
		}
		content = string(data)
	default:
		tmpl, err := c.assetLoader.LoadTemplate(input)
		if err != nil {
			return fmt.Errorf("loading template %q: %w", input, err)
		}
		content = tmpl
	}

	if !strings.Contains(content, pipeline.ContentPlaceholder) {
		return fmt.Errorf("template %q: %w", input, ErrTemplateMissingContent)
	}
	c.cfg.template = content
	return nil
}

// resolveStyle turns the style option (CSS, path, asset name, or StyleNone)
// into CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	switch {
	case input == "" || input == StyleNone:
		c.cfg.style = ""
	case strings.Contains(input, "{"):
		c.cfg.style = input
	case fileutil.IsFilePath(input):
		data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.style = string(data)
	default:
		css, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		c.cfg.style = css
	}
	return nil
}
