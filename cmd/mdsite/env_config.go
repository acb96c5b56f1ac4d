package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "MDSITE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // MDSITE_CONFIG: config file name or path
	PublicDir  string // MDSITE_PUBLIC_DIR: output directory
	BasePath   string // MDSITE_BASE_PATH: URL prefix

	// Tier 2 - Layout and assets
	ContentDir string // MDSITE_CONTENT_DIR: markdown source directory
	StaticDir  string // MDSITE_STATIC_DIR: static files directory
	Template   string // MDSITE_TEMPLATE: template name or path
	Style      string // MDSITE_STYLE: CSS style name or path
	AssetPath  string // MDSITE_ASSET_PATH: custom asset directory

	// Tier 3 - Generation
	Engine    string // MDSITE_ENGINE: native, goldmark
	Workers   int    // MDSITE_WORKERS: parallel workers
	Cache     *bool  // MDSITE_CACHE: enable the build cache
	CachePath string // MDSITE_CACHE_PATH: cache database path
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MDSITE_CONFIG":     true,
	"MDSITE_PUBLIC_DIR": true,
	"MDSITE_BASE_PATH":  true,
	// Tier 2 - Layout and assets
	"MDSITE_CONTENT_DIR": true,
	"MDSITE_STATIC_DIR":  true,
	"MDSITE_TEMPLATE":    true,
	"MDSITE_STYLE":       true,
	"MDSITE_ASSET_PATH":  true,
	// Tier 3 - Generation
	"MDSITE_ENGINE":     true,
	"MDSITE_WORKERS":    true,
	"MDSITE_CACHE":      true,
	"MDSITE_CACHE_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MDSITE_CONFIG"),
		PublicDir:  os.Getenv("MDSITE_PUBLIC_DIR"),
		BasePath:   os.Getenv("MDSITE_BASE_PATH"),
		// Tier 2
		ContentDir: os.Getenv("MDSITE_CONTENT_DIR"),
		StaticDir:  os.Getenv("MDSITE_STATIC_DIR"),
		Template:   os.Getenv("MDSITE_TEMPLATE"),
		Style:      os.Getenv("MDSITE_STYLE"),
		AssetPath:  os.Getenv("MDSITE_ASSET_PATH"),
		// Tier 3
		Engine:    os.Getenv("MDSITE_ENGINE"),
		CachePath: os.Getenv("MDSITE_CACHE_PATH"),
	}

	if workers := os.Getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if enabled := os.Getenv("MDSITE_CACHE"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			cfg.Cache = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSITE_* variables.
// Helps catch typos like MDSITE_BASEPATH instead of MDSITE_BASE_PATH.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Runs after the file is loaded and before CLI flags are merged, giving
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Site.Public, env.PublicDir)
	setIfNotEmpty(&cfg.Site.BasePath, env.BasePath)

	setIfNotEmpty(&cfg.Site.Content, env.ContentDir)
	setIfNotEmpty(&cfg.Site.Static, env.StaticDir)
	setIfNotEmpty(&cfg.Site.Template, env.Template)
	setIfNotEmpty(&cfg.Site.Style, env.Style)
	setIfNotEmpty(&cfg.Assets.BasePath, env.AssetPath)

	setIfNotEmpty(&cfg.Build.Engine, env.Engine)
	setIfNotEmpty(&cfg.Build.CachePath, env.CachePath)
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
	if env.Cache != nil {
		cfg.Build.Cache = *env.Cache
	}
}

// setIfNotEmpty assigns value to dst unless value is empty.
func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
