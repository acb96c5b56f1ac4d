// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdsite/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentDir returns hints when the content directory is missing.
func ForContentDir(dir string) string {
	return format("create " + dir + "/index.md or set site.content in the config")
}

// ForNoHeading returns hints for pages without a title line.
func ForNoHeading() string {
	return format(`start the page with a "# Title" line`)
}

// ForTemplateMissingContent returns hints for templates without a content marker.
func ForTemplateMissingContent() string {
	return format("add {{ Content }} where the page body belongs")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOverlappingDirs returns hints when static and public directories nest.
func ForOverlappingDirs() string {
	return format("site.static and site.public must be separate directories")
}

// ForCacheLocked returns hints when the build cache cannot be opened.
func ForCacheLocked() string {
	return format("another build may be running; retry or use --no-cache")
}

// ForAssetNotFound returns hints listing the embedded alternatives.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + ", or a path to a file")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
