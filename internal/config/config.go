// Package config loads and validates site configuration files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "mdsite"

// appDir is the directory under the user config dir holding named configs.
const appDir = "go-mdsite"

// Engine names.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// Defaults applied before the config file is read.
const (
	DefaultContentDir = "content"
	DefaultStaticDir  = "static"
	DefaultPublicDir  = "public"
	DefaultTemplate   = "default"
	DefaultStyle      = "default"
	DefaultCachePath  = ".mdsite/cache.db"
)

// Field limits.
const (
	MaxPathLength     = 4096
	MaxBasePathLength = 256
	MaxWorkers        = 64
)

// Config holds all configuration for a site build.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Build  BuildConfig  `yaml:"build"`
	Assets AssetsConfig `yaml:"assets"`
}

// SiteConfig defines the site layout.
type SiteConfig struct {
	Content  string `yaml:"content"`  // Markdown source tree
	Static   string `yaml:"static"`   // Copied verbatim into Public
	Public   string `yaml:"public"`   // Output tree, wiped on every build
	Template string `yaml:"template"` // Asset name or path to an HTML file
	Style    string `yaml:"style"`    // Asset name, path to a CSS file, or "none"
	BasePath string `yaml:"basePath"` // URL prefix when served under a sub-path
}

// BuildConfig defines how pages are generated.
type BuildConfig struct {
	Engine         string `yaml:"engine"`         // "native" (default) or "goldmark"
	Workers        int    `yaml:"workers"`        // 0 = auto
	Cache          bool   `yaml:"cache"`          // Skip unchanged pages
	CachePath      string `yaml:"cachePath"`      // bbolt database location
	ParallelBlocks bool   `yaml:"parallelBlocks"` // Compile blocks of one page concurrently
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// StyleNone disables stylesheet injection.
const StyleNone = "none"

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Content:  DefaultContentDir,
			Static:   DefaultStaticDir,
			Public:   DefaultPublicDir,
			Template: DefaultTemplate,
			Style:    DefaultStyle,
		},
		Build: BuildConfig{
			Engine:    EngineNative,
			Cache:     true,
			CachePath: DefaultCachePath,
		},
	}
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	paths := []struct {
		field string
		value string
	}{
		{"site.content", c.Site.Content},
		{"site.static", c.Site.Static},
		{"site.public", c.Site.Public},
		{"site.template", c.Site.Template},
		{"site.style", c.Site.Style},
		{"build.cachePath", c.Build.CachePath},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Site.Content == "" {
		return fmt.Errorf("%w: site.content: required", ErrInvalidValue)
	}
	if c.Site.Public == "" {
		return fmt.Errorf("%w: site.public: required", ErrInvalidValue)
	}

	if err := validateFieldLength("site.basePath", c.Site.BasePath, MaxBasePathLength); err != nil {
		return err
	}
	if err := validateBasePath(c.Site.BasePath); err != nil {
		return err
	}

	switch c.Build.Engine {
	case "", EngineNative, EngineGoldmark:
	default:
		return fmt.Errorf("%w: build.engine: %q (must be %s or %s)", ErrInvalidValue, c.Build.Engine, EngineNative, EngineGoldmark)
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	if c.Build.Cache && c.Build.CachePath == "" {
		return fmt.Errorf("%w: build.cachePath: required when cache is enabled", ErrInvalidValue)
	}

	return nil
}

// validateBasePath accepts URL paths like "/", "/repo/", or "repo".
func validateBasePath(p string) error {
	if p == "" {
		return nil
	}
	switch {
	case strings.Contains(p, "://"):
		return fmt.Errorf("%w: site.basePath: %q must be a path, not a URL", ErrInvalidValue, p)
	case strings.ContainsAny(p, " \t\n\\?#"):
		return fmt.Errorf("%w: site.basePath: %q contains invalid characters", ErrInvalidValue, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: site.basePath: %q contains relative segments", ErrInvalidValue, p)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.Describe(err))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdsite/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
