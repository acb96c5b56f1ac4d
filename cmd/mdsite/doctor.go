package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdsite/internal/cache"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// ErrNotReady is returned by the doctor command when a check failed.
var ErrNotReady = errors.New("site is not ready to build")

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string    `json:"status"` // "ready", "warnings", "errors"
	Site     siteInfo  `json:"site"`
	Cache    cacheInfo `json:"cache"`
	Env      envInfo   `json:"environment"`
	Warnings []string  `json:"warnings,omitempty"`
	Errors   []string  `json:"errors,omitempty"`
}

// siteInfo holds layout and asset check results.
type siteInfo struct {
	ConfigLoaded bool   `json:"config_loaded"`
	Content      string `json:"content,omitempty"`
	Pages        int    `json:"pages"`
	Static       string `json:"static,omitempty"`
	StaticFound  bool   `json:"static_found"`
	Public       string `json:"public,omitempty"`
	Engine       string `json:"engine,omitempty"`
	AssetsOK     bool   `json:"assets_ok"`
}

// cacheInfo holds build cache check results.
type cacheInfo struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
	Exists  bool   `json:"exists"`
	Entries int    `json:"entries"`
	Size    int64  `json:"size"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS    string `json:"os"`
	Arch  string `json:"arch"`
	CI    bool   `json:"ci"`
	Color bool   `json:"color"`
}

// runDoctor checks everything a build with the same flags depends on, without
// touching the public directory.
func runDoctor(positionalArgs []string, flags *buildFlags, env *Environment) error {
	if len(positionalArgs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positionalArgs)
	}

	result := diagnose(flags, env)

	if flags.jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ErrNotReady
	}
	return nil
}

// diagnose performs all diagnostic checks.
func diagnose(flags *buildFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:    runtime.GOOS,
			Arch:  runtime.GOARCH,
			Color: env.Color,
		},
	}

	checkEnvironment(result)
	checkSite(result, flags, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	} else {
		result.Status = statusReady
	}
	return result
}

// checkSite resolves the config and checks layout, assets, and cache.
func checkSite(result *doctorResult, flags *buildFlags, env *Environment) {
	cfg, err := resolveConfig(flags, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.ConfigLoaded = true
	result.Site.Content = cfg.Site.Content
	result.Site.Static = cfg.Site.Static
	result.Site.Public = cfg.Site.Public
	result.Site.Engine = cfg.Build.Engine

	pages, err := discoverPages(cfg.Site.Content, cfg.Site.Public)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	result.Site.Pages = len(pages)

	if err := fileutil.CheckOverlap(cfg.Site.Content, cfg.Site.Public); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("content and output: %v", err))
	}

	if info, err := os.Stat(cfg.Site.Static); err == nil && info.IsDir() {
		result.Site.StaticFound = true
		if err := fileutil.CheckOverlap(cfg.Site.Static, cfg.Site.Public); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("static and output: %v", err))
		}
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No static directory at %s; output will only contain pages", cfg.Site.Static))
	}

	if _, err := newConverter(cfg); err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Site.AssetsOK = true
	}

	result.Cache.Enabled = cfg.Build.Cache
	result.Cache.Path = cfg.Build.CachePath
	if cfg.Build.Cache {
		checkCache(result)
	}
}

// checkCache inspects an existing cache database. A missing one is created by
// the next build.
func checkCache(result *doctorResult) {
	info, err := os.Stat(result.Cache.Path)
	if err != nil {
		return
	}
	result.Cache.Exists = true
	result.Cache.Size = info.Size()

	store, err := cache.Open(result.Cache.Path)
	if err != nil {
		if errors.Is(err, cache.ErrLocked) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Cache %s is in use by another build", result.Cache.Path))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Cache %s: %v", result.Cache.Path, err))
		return
	}
	defer func() { _ = store.Close() }()

	n, err := store.Len()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cache %s: %v", result.Cache.Path, err))
		return
	}
	result.Cache.Entries = n
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdsite doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	if r.Site.ConfigLoaded {
		fmt.Fprintln(w, "  [OK] Config: loaded")
		if r.Site.Pages > 0 {
			fmt.Fprintf(w, "  [OK] Content: %s (%d page(s))\n", r.Site.Content, r.Site.Pages)
		} else {
			fmt.Fprintf(w, "  [ERROR] Content: %s (no pages)\n", r.Site.Content)
		}
		if r.Site.StaticFound {
			fmt.Fprintf(w, "  [OK] Static: %s\n", r.Site.Static)
		} else {
			fmt.Fprintf(w, "  [WARN] Static: %s (missing)\n", r.Site.Static)
		}
		fmt.Fprintf(w, "  [OK] Output: %s\n", r.Site.Public)
		if r.Site.AssetsOK {
			fmt.Fprintf(w, "  [OK] Engine and assets: %s\n", r.Site.Engine)
		} else {
			fmt.Fprintln(w, "  [ERROR] Engine and assets: unresolved")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Config: not loaded")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Cache")
	switch {
	case !r.Site.ConfigLoaded:
		fmt.Fprintln(w, "  [ERROR] Unknown (config not loaded)")
	case !r.Cache.Enabled:
		fmt.Fprintln(w, "  [OK] Disabled")
	case !r.Cache.Exists:
		fmt.Fprintf(w, "  [OK] %s (created on next build)\n", r.Cache.Path)
	default:
		fmt.Fprintf(w, "  [OK] %s (%s entries, %s)\n", r.Cache.Path,
			humanize.Comma(int64(r.Cache.Entries)), humanize.Bytes(uint64(r.Cache.Size)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
