// Package pathfilter decides which directory entries the enumerator follows
// and which files it reports.
package pathfilter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/taigrr/projcollect/internal/types"
)

// defaultExtensions is the allow-list of C and C++ source suffixes. It is
// never mutated; DefaultRelevantExtensions hands out copies.
var defaultExtensions = []string{"h", "hpp", "c", "cpp", "inc", "impl"}

// DefaultRelevantExtensions returns the default extension allow-list.
func DefaultRelevantExtensions() []string {
	return slices.Clone(defaultExtensions)
}

// PathFilter filters directories and files by name.
type PathFilter struct {
	extensions map[string]struct{}
	ignored    []glob.Glob
	patterns   []string
}

// New creates a new PathFilter with the given configuration. A nil config or
// an empty extension list selects the default allow-list.
func New(config *types.FilterConfig) (*PathFilter, error) {
	exts := defaultExtensions
	var patterns []string
	if config != nil {
		if len(config.Extensions) > 0 {
			exts = config.Extensions
		}
		patterns = config.IgnoredPatterns
	}

	pf := &PathFilter{
		extensions: make(map[string]struct{}, len(exts)),
		patterns:   slices.Clone(patterns),
	}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		pf.extensions[ext] = struct{}{}
	}

	for _, pattern := range patterns {
		// Normalize pattern path separators (Windows compatibility)
		g, err := glob.Compile(strings.ReplaceAll(pattern, "\\", "/"), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		pf.ignored = append(pf.ignored, g)
	}

	return pf, nil
}

// Default returns a PathFilter using the default allow-list and no ignore
// patterns.
func Default() *PathFilter {
	pf, _ := New(nil)
	return pf
}

// IsValidDirectoryName reports whether a directory entry may be descended
// into. Only the exact names "." and ".." are rejected; hidden names pass.
func IsValidDirectoryName(name string) bool {
	switch len(name) {
	case 0:
		return false
	case 1:
		return name[0] != '.'
	case 2:
		return name[0] != '.' || name[1] != '.'
	default:
		return true
	}
}

// Extension returns the lower-cased text after the last dot in name, and
// false when name has no dot at all.
func Extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx == -1 {
		return "", false
	}
	return strings.ToLower(name[idx+1:]), true
}

// IsRelevantFile reports whether a file name carries an allow-listed
// extension. Names without a dot have no extension and are never relevant.
func (pf *PathFilter) IsRelevantFile(name string) bool {
	ext, ok := Extension(name)
	if !ok {
		return false
	}
	_, found := pf.extensions[ext]
	return found
}

// IsIgnored checks if a path relative to the walk root matches an ignore
// pattern. Directories also match with a trailing slash, so "build/**"
// prunes "build" itself.
func (pf *PathFilter) IsIgnored(relPath string, isDir bool) bool {
	if len(pf.ignored) == 0 {
		return false
	}

	// Normalize path separators
	normalizedPath := strings.ReplaceAll(relPath, "\\", "/")
	for _, g := range pf.ignored {
		if g.Match(normalizedPath) {
			return true
		}
		if isDir && g.Match(normalizedPath+"/") {
			return true
		}
	}
	return false
}

// Extensions returns the allow-list in sorted order.
func (pf *PathFilter) Extensions() []string {
	exts := make([]string, 0, len(pf.extensions))
	for ext := range pf.extensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// IgnoredPatterns returns the configured ignore patterns.
func (pf *PathFilter) IgnoredPatterns() []string {
	return slices.Clone(pf.patterns)
}
