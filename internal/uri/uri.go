// Package uri provides file URI generation for report entries.
package uri

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI generates a file URI for a path.
// Relative paths are resolved against the working directory first.
func FileURI(path string) string {
	if path == "" {
		return ""
	}
	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}

	// Normalize separators so Windows paths encode the same way
	path = strings.ReplaceAll(path, "\\", "/")

	// URI encode the path, but keep slashes as slashes
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	encodedPath := strings.Join(parts, "/")

	// Remove leading slash since we add file:/// prefix
	encodedPath = strings.TrimPrefix(encodedPath, "/")

	return "file:///" + encodedPath
}
