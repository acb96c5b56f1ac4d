package mdsite

// Engine names accepted by WithEngine.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// StyleNone disables stylesheet injection when passed to WithStyle.
const StyleNone = "none"

// Input contains conversion parameters for one page.
type Input struct {
	Markdown string // Markdown content (required)
	Template string // Template HTML overriding the converter's (optional)
	CSS      string // Extra CSS appended after the converter's style (optional)
}

// Result holds the output of one conversion.
type Result struct {
	HTML     []byte // Complete page: template filled, style injected, links rewritten
	Fragment string // Converted body as produced by the engine
	Title    string // Text of the first "# " heading
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options before they are resolved by New.
type converterConfig struct {
	engine         string
	basePath       string
	templateInput  string
	styleInput     string
	assetPath      string
	parallelBlocks bool

	template string // resolved template HTML
	style    string // resolved CSS
}

// WithEngine selects the markdown engine: EngineNative (default) or EngineGoldmark.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithBasePath prefixes root-relative links with p, for sites served under
// a sub-path such as "/repo/".
func WithBasePath(p string) Option {
	return func(c *Converter) {
		c.cfg.basePath = p
	}
}

// WithTemplate sets the page template. The value may be template HTML
// containing {{ Content }}, a path to an HTML file, or an asset name.
func WithTemplate(t string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = t
	}
}

// WithStyle sets the stylesheet injected into every page. The value may be
// CSS, a path to a CSS file, an asset name, or StyleNone.
func WithStyle(s string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = s
	}
}

// WithAssetPath adds a directory searched for templates/{name}.html and
// styles/{name}.css before the embedded assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithParallelBlocks compiles the blocks of large pages concurrently.
// Only the native engine uses it.
func WithParallelBlocks() Option {
	return func(c *Converter) {
		c.cfg.parallelBlocks = true
	}
}
