// Package filesystem enumerates source files below a root directory.
package filesystem

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/taigrr/projcollect/internal/pathfilter"
	"github.com/taigrr/projcollect/internal/types"
)

// readBatch is the number of directory entries requested per Readdir call.
const readBatch = 256

// Enumerator walks directory trees and collects relevant files.
type Enumerator struct {
	fs         afero.Fs
	pathFilter *pathfilter.PathFilter
	separator  string
}

// New creates a new Enumerator. A nil fs selects the OS filesystem, a nil
// filter the default allow-list and an empty separator the platform one.
func New(fsys afero.Fs, pf *pathfilter.PathFilter, separator string) *Enumerator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if pf == nil {
		pf = pathfilter.Default()
	}
	if separator == "" {
		separator = string(os.PathSeparator)
	}
	return &Enumerator{
		fs:         fsys,
		pathFilter: pf,
		separator:  separator,
	}
}

// Enumerate walks root and returns every regular file whose extension is in
// the allow-list, in discovery order. Directories are processed last-in
// first-out from an explicit frontier.
//
// The walk stops at the first directory that cannot be opened or read. The
// files found up to that point are returned together with the error.
func (e *Enumerator) Enumerate(root string) ([]string, error) {
	if root == "" {
		return nil, types.NewError(types.ErrInvalidArgument, "", errors.New("root directory is empty"))
	}

	var files []string
	frontier := []string{root}

	for len(frontier) > 0 {
		dir := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		subdirs, found, err := e.readDirectory(root, dir)
		files = append(files, found...)
		if err != nil {
			return files, err
		}
		frontier = append(frontier, subdirs...)
	}

	return files, nil
}

// readDirectory lists the direct children of dir. It returns the
// subdirectories to push and the relevant files, both in entry order.
func (e *Enumerator) readDirectory(root, dir string) (subdirs, files []string, err error) {
	f, err := e.fs.Open(dir)
	if err != nil {
		return nil, nil, types.NewError(types.ErrCouldNotOpenDirectory, dir, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, types.NewError(types.ErrCouldNotOpenDirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, nil, types.NewError(types.ErrCouldNotOpenDirectory, dir, errors.New("not a directory"))
	}

	for {
		entries, readErr := f.Readdir(readBatch)
		for _, entry := range entries {
			name := entry.Name()
			mode := entry.Mode()

			switch {
			case mode.IsDir():
				if !pathfilter.IsValidDirectoryName(name) {
					continue
				}
				child := e.join(dir, name)
				if e.pathFilter.IsIgnored(e.relative(root, child), true) {
					continue
				}
				subdirs = append(subdirs, child)
			case mode.IsRegular():
				if !e.pathFilter.IsRelevantFile(name) {
					continue
				}
				child := e.join(dir, name)
				if e.pathFilter.IsIgnored(e.relative(root, child), false) {
					continue
				}
				files = append(files, child)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return subdirs, files, nil
		}
		if readErr != nil {
			return subdirs, files, types.NewError(types.ErrCouldNotReadDirectoryContent, dir, readErr)
		}
		if len(entries) == 0 {
			return subdirs, files, nil
		}
	}
}

func (e *Enumerator) join(dir, name string) string {
	return strings.TrimSuffix(dir, e.separator) + e.separator + name
}

// relative returns child relative to root using forward slashes.
func (e *Enumerator) relative(root, child string) string {
	rel := strings.TrimPrefix(child, strings.TrimSuffix(root, e.separator)+e.separator)
	return strings.ReplaceAll(rel, e.separator, "/")
}

// Separator returns the separator used to build child paths.
func (e *Enumerator) Separator() string {
	return e.separator
}
