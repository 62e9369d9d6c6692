// Package includes extracts local include directives from source files.
package includes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/taigrr/projcollect/internal/types"
)

const (
	directive = "#include"

	// maxLineLength bounds a single line; longer lines fail the read.
	maxLineLength = 1 << 20
)

var blankStripper = strings.NewReplacer(" ", "", "\t", "")

// Scanner reads source files and collects their local includes.
type Scanner struct {
	fs    afero.Fs
	cache *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	size     int64
	modTime  time.Time
	includes []string
	err      error
}

// New creates a new Scanner. A nil fs selects the OS filesystem.
func New(fsys afero.Fs) *Scanner {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Scanner{fs: fsys}
}

// NewCached creates a Scanner that remembers up to size scan results. A
// cached result is reused while the file's size and modification time are
// unchanged. A size of zero or less disables the cache.
func NewCached(fsys afero.Fs, size int) (*Scanner, error) {
	s := New(fsys)
	if size <= 0 {
		return s, nil
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// ExtractIncludeFromLine returns the target of a local include directive on
// line. Spaces and tabs are removed from the whole line before matching, so
// `# include "a b.h"` yields "ab.h". Lines without a directive, and
// directives not followed by a double quote, yield no target and no error.
func ExtractIncludeFromLine(line string) (string, bool, error) {
	if line == "" {
		return "", false, types.ErrInvalidArgument
	}

	stripped := blankStripper.Replace(line)
	idx := strings.Index(stripped, directive)
	if idx == -1 {
		return "", false, nil
	}

	rest := stripped[idx+len(directive):]
	if rest == "" || rest[0] != '"' {
		return "", false, nil
	}

	end := strings.IndexByte(rest[1:], '"')
	if end == -1 {
		return "", false, types.ErrUnterminatedInclude
	}
	return rest[1 : end+1], true, nil
}

// Scan collects the local includes of every line read from r. A line that
// fails to parse does not stop the scan; the last such failure is returned
// together with everything collected. An empty line counts as a failure
// with kind ErrInvalidArgument.
func Scan(r io.Reader, path string) ([]string, error) {
	var includes []string
	var lastErr error

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		target, ok, err := ExtractIncludeFromLine(sc.Text())
		if err != nil {
			lastErr = &types.Error{Kind: types.KindOf(err), Path: path, Line: lineNum}
			continue
		}
		if ok {
			includes = append(includes, target)
		}
	}

	if err := sc.Err(); err != nil {
		return includes, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return includes, lastErr
}

// ScanFile returns the local includes of the file at path in line order.
func (s *Scanner) ScanFile(path string) ([]string, error) {
	if path == "" {
		return nil, types.NewError(types.ErrInvalidArgument, "", errors.New("file path is empty"))
	}

	f, err := s.fs.Open(path)
	if err != nil {
		return nil, types.NewError(types.ErrCouldNotOpenFile, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, types.NewError(types.ErrCouldNotOpenFile, path, err)
	}
	if info.IsDir() {
		return nil, types.NewError(types.ErrCouldNotOpenFile, path, errors.New("is a directory"))
	}

	if s.cache != nil {
		if entry, ok := s.cache.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
			return slices.Clone(entry.includes), entry.err
		}
	}

	includes, err := Scan(f, path)

	if s.cache != nil {
		s.cache.Add(path, cacheEntry{
			size:     info.Size(),
			modTime:  info.ModTime(),
			includes: slices.Clone(includes),
			err:      err,
		})
	}

	return includes, err
}

// ScanFiles runs ScanFile over paths on up to workers goroutines and returns
// one result per path in input order. workers <= 0 uses one per CPU.
func (s *Scanner) ScanFiles(paths []string, workers int) []types.FileIncludes {
	if len(paths) == 0 {
		return []types.FileIncludes{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	numWorkers := max(min(workers, len(paths)), 1)

	type indexedResult struct {
		idx    int
		result types.FileIncludes
	}

	resultsCh := make(chan indexedResult, len(paths))
	fileCh := make(chan int, len(paths))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for idx := range fileCh {
				path := paths[idx]
				found, err := s.ScanFile(path)
				if found == nil {
					found = []string{}
				}

				result := types.FileIncludes{
					Path:     path,
					Includes: found,
					Err:      err,
				}
				if err != nil {
					result.Error = err.Error()
				}
				resultsCh <- indexedResult{idx: idx, result: result}
			}
		})
	}

	for i := range paths {
		fileCh <- i
	}
	close(fileCh)

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Collect results and sort by input index for stable ordering
	indexedResults := make([]indexedResult, 0, len(paths))
	for r := range resultsCh {
		indexedResults = append(indexedResults, r)
	}
	sort.Slice(indexedResults, func(i, j int) bool {
		return indexedResults[i].idx < indexedResults[j].idx
	})

	results := make([]types.FileIncludes, 0, len(indexedResults))
	for _, ir := range indexedResults {
		results = append(results, ir.result)
	}
	return results
}

// Cached reports whether the scanner keeps a result cache.
func (s *Scanner) Cached() bool {
	return s.cache != nil
}
