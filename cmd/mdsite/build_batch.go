package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/cache"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
)

// Sentinel errors for page generation.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePage    = errors.New("failed to write page")
	ErrPagesFailed  = errors.New("page generation failed")
)

// maxAutoWorkers caps the worker count chosen from GOMAXPROCS.
const maxAutoWorkers = 8

// PageConverter is the interface for the page converter.
type PageConverter interface {
	Convert(ctx context.Context, input mdsite.Input) (*mdsite.Result, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*mdsite.Converter)(nil)

// pageCache stores rendered pages between builds.
type pageCache interface {
	Lookup(key string, digest []byte) ([]byte, bool, error)
	Record(key string, digest, page []byte) error
}

// Compile-time interface implementation check.
var _ pageCache = (*cache.Store)(nil)

// buildParams groups values shared by every page of a build.
type buildParams struct {
	conv    PageConverter
	cache   pageCache // nil when caching is disabled
	salt    []string  // digest inputs shared by all pages
	workers int
}

// PageResult holds the outcome of a single page.
type PageResult struct {
	Page     Page
	Err      error
	Warning  error // non-fatal, the page was still written
	Cached   bool
	Size     int
	Duration time.Duration
}

// generatePages renders pages concurrently.
// Results are in the same order as pages.
func generatePages(ctx context.Context, pages []Page, params *buildParams) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(resolveWorkers(params.workers), len(pages))

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{Page: pages[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = generatePage(ctx, pages[idx], params)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// generatePage renders one page, replaying it from the cache when its
// inputs are unchanged.
func generatePage(ctx context.Context, p Page, params *buildParams) PageResult {
	start := time.Now()
	result := PageResult{Page: p}
	done := func() PageResult {
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(p.SourcePath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return done()
	}

	var digest []byte
	if params.cache != nil {
		digest = cache.Digest(slices.Concat(params.salt, []string{string(content)})...)
		page, ok, err := params.cache.Lookup(p.Key, digest)
		if err != nil {
			result.Warning = fmt.Errorf("cache lookup: %w", err)
		}
		if ok {
			result.Cached = true
			result.Size = len(page)
			if err := fileutil.WriteFileAtomic(p.OutputPath, page); err != nil {
				result.Err = fmt.Errorf("%w: %v%s", ErrWritePage, err, hints.ForOutputDirectory())
			}
			return done()
		}
	}

	converted, err := params.conv.Convert(ctx, mdsite.Input{Markdown: string(content)})
	if err != nil {
		if errors.Is(err, mdsite.ErrNoHeading) {
			err = fmt.Errorf("%w%s", err, hints.ForNoHeading())
		}
		result.Err = err
		return done()
	}

	result.Size = len(converted.HTML)
	if err := fileutil.WriteFileAtomic(p.OutputPath, converted.HTML); err != nil {
		result.Err = fmt.Errorf("%w: %v%s", ErrWritePage, err, hints.ForOutputDirectory())
		return done()
	}

	if params.cache != nil {
		if err := params.cache.Record(p.Key, digest, converted.HTML); err != nil {
			result.Warning = fmt.Errorf("cache record: %w", err)
		}
	}

	return done()
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	return max(1, min(runtime.GOMAXPROCS(0), maxAutoWorkers))
}

// ResultSummary holds page counts for a build.
type ResultSummary struct {
	Succeeded int
	Cached    int
	Failed    int
	Bytes     uint64
}

// countResults tallies page outcomes.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Bytes += uint64(r.Size)
		if r.Cached {
			summary.Cached++
		}
	}
	return summary
}

// printResults outputs page results and returns the failure count.
func printResults(results []PageResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	failed := "FAILED"
	if env.Color {
		failed = "\x1b[31mFAILED\x1b[0m"
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", failed, r.Page.SourcePath, r.Err)
			continue
		}
		if r.Warning != nil {
			fmt.Fprintf(env.Stderr, "warning: %s: %v\n", r.Page.SourcePath, r.Warning)
		}

		if quiet {
			continue
		}

		switch {
		case verbose && r.Cached:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, cached)\n", r.Page.SourcePath, r.Page.OutputPath, humanize.Bytes(uint64(r.Size)))
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.Page.SourcePath, r.Page.OutputPath, humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Page.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded (%d cached, %s), %d failed\n",
			summary.Succeeded, summary.Cached, humanize.Bytes(summary.Bytes), summary.Failed)
	}

	return summary.Failed
}
