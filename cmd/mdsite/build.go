package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/cache"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for CLI usage.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrInvalidFlags   = errors.New("invalid flags")
)

// runBuild copies the static tree, then renders every content page into the
// public directory.
func runBuild(ctx context.Context, positionalArgs []string, flags *buildFlags, env *Environment) error {
	if len(positionalArgs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positionalArgs)
	}

	start := env.Now()

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	// Everything that can fail on bad input runs before the public
	// directory is wiped.
	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	pages, err := discoverPages(cfg.Site.Content, cfg.Site.Public)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForContentDir(cfg.Site.Content))
		}
		return fmt.Errorf("discovering pages: %w", err)
	}

	if err := prepareOutput(cfg, flags.common.verbose, env); err != nil {
		return err
	}

	params := &buildParams{
		conv:    conv,
		workers: cfg.Build.Workers,
		salt: []string{
			Version,
			cfg.Build.Engine,
			pipeline.NormalizeBasePath(cfg.Site.BasePath),
			conv.Template(),
			conv.Style(),
		},
	}

	var store *cache.Store
	if cfg.Build.Cache {
		store, err = cache.Open(cfg.Build.CachePath)
		if err != nil {
			if errors.Is(err, cache.ErrLocked) {
				return fmt.Errorf("%w%s", err, hints.ForCacheLocked())
			}
			return fmt.Errorf("opening cache: %w", err)
		}
		defer func() { _ = store.Close() }()
		params.cache = store
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Building %d page(s) with %d worker(s)\n", len(pages), min(resolveWorkers(params.workers), len(pages)))
	}

	results := generatePages(ctx, pages, params)

	if store != nil && ctx.Err() == nil {
		pruneCache(store, pages, flags.common.verbose, env)
	}

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failedCount > 0 {
		return fmt.Errorf("%w: %d page(s)", ErrPagesFailed, failedCount)
	}
	return nil
}

// resolveConfig builds the effective config.
// Precedence: CLI flags > MDSITE_* env vars > config file > defaults.
// Without --config or MDSITE_CONFIG, a missing default config file is not an
// error.
func resolveConfig(flags *buildFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
	} else {
		cfg, err = config.LoadConfig(config.DefaultName)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.DefaultConfig(), nil
		}
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// userConfigPaths lists where a named config is searched in the user config dir.
func userConfigPaths(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil || fileutil.IsFilePath(name) {
		return nil
	}
	return []string{filepath.Join(dir, "go-mdsite", name+".yaml")}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	// Site flags
	setIfNotEmpty(&cfg.Site.Content, flags.site.content)
	setIfNotEmpty(&cfg.Site.Static, flags.site.static)
	setIfNotEmpty(&cfg.Site.Public, flags.site.public)
	setIfNotEmpty(&cfg.Site.BasePath, flags.site.basePath)

	// Asset flags
	setIfNotEmpty(&cfg.Site.Template, flags.assets.template)
	setIfNotEmpty(&cfg.Site.Style, flags.assets.style)
	setIfNotEmpty(&cfg.Assets.BasePath, flags.assets.assetPath)
	if flags.assets.noStyle {
		cfg.Site.Style = config.StyleNone
	}

	// Generation flags
	setIfNotEmpty(&cfg.Build.Engine, flags.gen.engine)
	setIfNotEmpty(&cfg.Build.CachePath, flags.gen.cachePath)
	if flags.gen.workers != 0 {
		cfg.Build.Workers = flags.gen.workers
	}
	if flags.gen.noCache {
		cfg.Build.Cache = false
	}
	if flags.gen.parallelBlocks {
		cfg.Build.ParallelBlocks = true
	}
}

// prepareOutput refuses layouts where wiping the public directory would
// destroy sources, then replaces the public directory with a copy of the
// static directory. A missing static directory leaves an empty public
// directory.
func prepareOutput(cfg *config.Config, verbose bool, env *Environment) error {
	if err := fileutil.CheckOverlap(cfg.Site.Content, cfg.Site.Public); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOverlappingDirs())
	}

	err := fileutil.CopyDir(cfg.Site.Static, cfg.Site.Public)
	switch {
	case err == nil:
		if verbose {
			fmt.Fprintf(env.Stderr, "Copied %s -> %s\n", cfg.Site.Static, cfg.Site.Public)
		}
		return nil
	case errors.Is(err, fileutil.ErrOverlappingDirs):
		return fmt.Errorf("%w%s", err, hints.ForOverlappingDirs())
	case errors.Is(err, fileutil.ErrSourceNotFound):
		if verbose {
			fmt.Fprintf(env.Stderr, "No static directory at %s\n", cfg.Site.Static)
		}
	default:
		return fmt.Errorf("copying static files: %w", err)
	}

	if err := os.RemoveAll(cfg.Site.Public); err != nil {
		return fmt.Errorf("clearing output directory: %w", err)
	}
	if err := os.MkdirAll(cfg.Site.Public, fileutil.DirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	return nil
}

// newConverter creates the page converter described by cfg.
func newConverter(cfg *config.Config) (*mdsite.Converter, error) {
	opts := []mdsite.Option{
		mdsite.WithEngine(cfg.Build.Engine),
		mdsite.WithBasePath(cfg.Site.BasePath),
		mdsite.WithTemplate(cfg.Site.Template),
		mdsite.WithStyle(cfg.Site.Style),
		mdsite.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.Build.ParallelBlocks {
		opts = append(opts, mdsite.WithParallelBlocks())
	}

	conv, err := mdsite.New(opts...)
	if err != nil {
		switch {
		case errors.Is(err, mdsite.ErrStyleNotFound):
			return nil, fmt.Errorf("%w%s", err, hints.ForAssetNotFound(mdsite.EmbeddedStyles()))
		case errors.Is(err, mdsite.ErrTemplateNotFound):
			return nil, fmt.Errorf("%w%s", err, hints.ForAssetNotFound(mdsite.EmbeddedTemplates()))
		case errors.Is(err, mdsite.ErrTemplateMissingContent):
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateMissingContent())
		}
		return nil, err
	}
	return conv, nil
}

// pruneCache drops entries for pages that no longer exist.
// Failures are reported as warnings since the site is already built.
func pruneCache(store *cache.Store, pages []Page, verbose bool, env *Environment) {
	keep := make(map[string]bool, len(pages))
	for _, p := range pages {
		keep[p.Key] = true
	}

	pruned, err := store.Prune(keep)
	if err != nil {
		fmt.Fprintf(env.Stderr, "warning: pruning cache: %v\n", err)
		return
	}

	if verbose {
		n, _ := store.Len()
		fmt.Fprintf(env.Stderr, "Cache %s: %s entries, %d pruned\n", store.Path(), humanize.Comma(int64(n)), pruned)
	}
}
