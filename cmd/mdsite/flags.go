package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the site layout flags.
type siteFlags struct {
	content  string
	static   string
	public   string
	basePath string
}

// assetFlags holds template and style flags.
type assetFlags struct {
	template  string // Name or path for the page template
	style     string // Name or path for CSS
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// generationFlags holds page generation flags.
type generationFlags struct {
	engine         string
	workers        int
	noCache        bool
	cachePath      string
	parallelBlocks bool
}

// buildFlags holds all flags for the build, config, and doctor commands.
type buildFlags struct {
	common commonFlags
	site   siteFlags
	assets assetFlags
	gen    generationFlags

	jsonOutput bool // doctor only
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page timing and sizes")
}

// addSiteFlags adds site layout flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "markdown source directory")
	fs.StringVar(&f.static, "static", "", "static files directory")
	fs.StringVarP(&f.public, "output", "o", "", "output directory (wiped on build)")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix when served under a sub-path")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addGenerationFlags adds page generation flags to a FlagSet.
func addGenerationFlags(fs *flag.FlagSet, f *generationFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: native, goldmark")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noCache, "no-cache", false, "regenerate every page")
	fs.StringVar(&f.cachePath, "cache-path", "", "build cache database path")
	fs.BoolVar(&f.parallelBlocks, "parallel-blocks", false, "compile blocks of large pages concurrently")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	return parseSiteCommandFlags("build", args, func() { printBuildUsage(os.Stderr) })
}

// parseConfigFlags parses config command flags. They mirror build flags so
// the printed config is exactly what a build with the same flags would use.
func parseConfigFlags(args []string) (*buildFlags, []string, error) {
	return parseSiteCommandFlags("config", args, func() { printConfigUsage(os.Stderr) })
}

// parseDoctorFlags parses doctor command flags: the site flags plus --json.
func parseDoctorFlags(args []string) (*buildFlags, []string, error) {
	return parseSiteCommandFlags("doctor", args, func() { printDoctorUsage(os.Stderr) }, func(fs *flag.FlagSet, f *buildFlags) {
		fs.BoolVar(&f.jsonOutput, "json", false, "print the report as JSON")
	})
}

func parseSiteCommandFlags(name string, args []string, usage func(), extra ...func(*flag.FlagSet, *buildFlags)) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addGenerationFlags(fs, &f.gen)
	for _, add := range extra {
		add(fs, f)
	}

	fs.Usage = usage

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
