// Package types defines the data structures shared by the enumerator, the
// include scanner, the report renderer and the MCP tools.
package types

type (
	// FilterConfig contains configuration for the path filter.
	FilterConfig struct {
		// Extensions replaces the default allow-list when non-empty.
		Extensions      []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
		IgnoredPatterns []string `json:"ignoredPatterns,omitempty" yaml:"ignored_patterns,omitempty"`
	}

	// FileEntry is a single enumerated source file.
	FileEntry struct {
		Path string `json:"path" yaml:"path"`
		URI  string `json:"uri,omitempty" yaml:"uri,omitempty"`
	}
)
