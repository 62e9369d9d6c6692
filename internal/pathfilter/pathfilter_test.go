package pathfilter

import (
	"slices"
	"testing"

	"github.com/taigrr/projcollect/internal/types"
)

func TestIsValidDirectoryName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".", false},
		{"..", false},
		{"", false},
		{"src", true},
		{".git", true},
		{".hidden", true},
		{"...", true},
		{"a.", true},
		{".a", true},
		{"a", true},
		{"ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDirectoryName(tt.name); got != tt.want {
				t.Errorf("IsValidDirectoryName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPathFilter_DefaultExtensions(t *testing.T) {
	filter := Default()

	tests := []struct {
		name string
		want bool
	}{
		{"main.cpp", true},
		{"main.c", true},
		{"types.h", true},
		{"types.hpp", true},
		{"table.inc", true},
		{"vector.impl", true},
		{"MAIN.CPP", true},
		{"Types.Hpp", true},
		{"archive.tar.h", true},
		{"readme.txt", false},
		{"main.cc", false},
		{"main.cpp.bak", false},
		{"notes.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.IsRelevantFile(tt.name); got != tt.want {
				t.Errorf("IsRelevantFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPathFilter_NamesWithoutExtension(t *testing.T) {
	filter := Default()

	tests := []string{
		"Makefile",
		"h",
		"cpp",
		"a.",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if filter.IsRelevantFile(name) {
				t.Errorf("IsRelevantFile(%q) = true, want false", name)
			}
		})
	}
}

func TestPathFilter_DotfileUsesTextAfterDot(t *testing.T) {
	filter := Default()
	if !filter.IsRelevantFile(".h") {
		t.Error(`IsRelevantFile(".h") = false, want true`)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"a.CPP", "cpp", true},
		{"a.b.c", "c", true},
		{"a.", "", true},
		{".h", "h", true},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extension(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Extension(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultRelevantExtensions(t *testing.T) {
	want := []string{"h", "hpp", "c", "cpp", "inc", "impl"}

	got := DefaultRelevantExtensions()
	if !slices.Equal(got, want) {
		t.Fatalf("DefaultRelevantExtensions() = %v, want %v", got, want)
	}

	// Mutating the returned slice must not leak into later calls.
	got[0] = "zzz"
	if again := DefaultRelevantExtensions(); !slices.Equal(again, want) {
		t.Errorf("DefaultRelevantExtensions() after mutation = %v, want %v", again, want)
	}
	if !Default().IsRelevantFile("x.h") {
		t.Error("default filter lost the h extension")
	}
}

func TestPathFilter_CustomExtensions(t *testing.T) {
	filter, err := New(&types.FilterConfig{
		Extensions: []string{".CC", "hh", " cxx ", ""},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"a.cc", true},
		{"a.hh", true},
		{"a.CXX", true},
		{"a.cpp", false},
		{"a.h", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.IsRelevantFile(tt.name); got != tt.want {
				t.Errorf("IsRelevantFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if got, want := filter.Extensions(), []string{"cc", "cxx", "hh"}; !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestPathFilter_IgnoredPatterns(t *testing.T) {
	t.Run("no patterns ignores nothing", func(t *testing.T) {
		filter := Default()
		if filter.IsIgnored(".git", true) {
			t.Error("IsIgnored(.git) = true, want false")
		}
	})

	t.Run("double asterisk prunes directory and contents", func(t *testing.T) {
		filter, err := New(&types.FilterConfig{
			IgnoredPatterns: []string{"build/**"},
		})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		tests := []struct {
			path  string
			isDir bool
			want  bool
		}{
			{"build", true, true},
			{"build/gen/x.h", false, true},
			{"build", false, false},
			{"src/build", true, false},
			{"src/main.cpp", false, false},
		}

		for _, tt := range tests {
			if got := filter.IsIgnored(tt.path, tt.isDir); got != tt.want {
				t.Errorf("IsIgnored(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
			}
		}
	})

	t.Run("single asterisk stays within a segment", func(t *testing.T) {
		filter, err := New(&types.FilterConfig{
			IgnoredPatterns: []string{"*_test.c"},
		})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if !filter.IsIgnored("foo_test.c", false) {
			t.Error("IsIgnored(foo_test.c) = false, want true")
		}
		if filter.IsIgnored("dir/foo_test.c", false) {
			t.Error("IsIgnored(dir/foo_test.c) = true, want false")
		}
	})

	t.Run("backslash paths are normalized", func(t *testing.T) {
		filter, err := New(&types.FilterConfig{
			IgnoredPatterns: []string{"third_party\\**"},
		})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if !filter.IsIgnored("third_party\\zlib\\zlib.h", false) {
			t.Error("IsIgnored with backslashes = false, want true")
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := New(&types.FilterConfig{
			IgnoredPatterns: []string{"[unclosed"},
		})
		if err == nil {
			t.Error("New() error = nil, want error for invalid pattern")
		}
	})

	t.Run("patterns are reported back", func(t *testing.T) {
		filter, err := New(&types.FilterConfig{
			IgnoredPatterns: []string{"a/**", "b/**"},
		})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if got := filter.IgnoredPatterns(); !slices.Equal(got, []string{"a/**", "b/**"}) {
			t.Errorf("IgnoredPatterns() = %v", got)
		}
	})
}
