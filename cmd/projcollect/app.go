package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/taigrr/projcollect/internal/config"
	"github.com/taigrr/projcollect/internal/filesystem"
	"github.com/taigrr/projcollect/internal/includes"
	"github.com/taigrr/projcollect/internal/logger"
	"github.com/taigrr/projcollect/internal/pathfilter"
	"github.com/taigrr/projcollect/internal/report"
	"github.com/taigrr/projcollect/internal/types"
	"github.com/taigrr/projcollect/internal/uri"
)

// app wires configuration, logging and the core services for one command.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	enumerator *filesystem.Enumerator
	scanner    *includes.Scanner
	renderer   *report.Renderer

	// root confines MCP tool paths; set by runServer.
	root string
}

func newApp(opts *options, fsys afero.Fs, out io.Writer, serve bool) (*app, error) {
	cfg, err := config.LoadFs(fsys, opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(opts.logLevel, opts.logFormat, opts.format, opts.color, opts.workers, opts.extensions)
	if len(opts.ignored) > 0 {
		cfg.Filter.IgnoredPatterns = opts.ignored
	}
	if opts.separator != "" {
		cfg.Filter.Separator = opts.separator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// stdout belongs to the MCP transport while serving
	if serve && cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		log = logger.NewDefault()
		log.Warnw("falling back to stderr logging", "output", cfg.Logging.Output, "error", err)
	}

	pf, err := pathfilter.New(cfg.PathFilterConfig())
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	scanner := includes.New(fsys)
	if serve {
		scanner, err = includes.NewCached(fsys, cfg.Scan.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create scan cache: %w", err)
		}
	}

	log.Debugw("configuration loaded",
		"extensions", pf.Extensions(),
		"ignored", pf.IgnoredPatterns(),
		"workers", cfg.Scan.Workers,
		"cached", scanner.Cached(),
	)

	return &app{
		cfg:        cfg,
		log:        log,
		enumerator: filesystem.New(fsys, pf, cfg.Filter.Separator),
		scanner:    scanner,
		renderer:   report.New(format, useColor(cfg.Output.Color, out)),
	}, nil
}

// close flushes the logger and releases its log file.
func (a *app) close() {
	_ = a.log.Sync()
	_ = a.log.Close()
}

// useColor resolves auto|always|never against the writer the report goes to.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// collect enumerates sourceDir and then scans mainFile for local includes.
// The include scan is skipped when enumeration fails.
func (a *app) collect(mainFile, sourceDir, outDir string, all bool) *types.Report {
	rep := &types.Report{
		MainFile:  mainFile,
		SourceDir: sourceDir,
		OutDir:    outDir,
		Files:     []types.FileEntry{},
		Includes:  []string{},
	}

	log := a.log.WithFields(map[string]any{
		"root": sourceDir,
		"main": mainFile,
		"out":  outDir,
		"all":  all,
	})
	files, err := a.enumerator.Enumerate(sourceDir)
	rep.Files = fileEntries(files)
	if err != nil {
		log.Warnw("enumeration failed", "error", err, "partial", len(files))
		rep.Errors = append(rep.Errors, err.Error())
		return rep
	}
	log.Debugw("enumerated source directory", "files", len(files))

	found, err := a.scanner.ScanFile(mainFile)
	if found != nil {
		rep.Includes = found
	}
	if err != nil {
		log.Warnw("include scan reported an error", "error", err)
		rep.Errors = append(rep.Errors, err.Error())
	}

	if all {
		rep.Scanned = a.scanner.ScanFiles(files, a.cfg.Scan.Workers)
		log.Debugw("scanned enumerated files", "files", len(rep.Scanned), "failed", countFailed(rep.Scanned))
	}

	return rep
}

func (a *app) runCollect(w io.Writer, mainFile, sourceDir, outDir string, all bool) error {
	rep := a.collect(mainFile, sourceDir, outDir, all)
	if err := a.renderer.Render(w, rep); err != nil {
		return err
	}
	if n := len(rep.Errors) + countFailed(rep.Scanned); n > 0 {
		return fmt.Errorf("collect finished with %d error(s)", n)
	}
	return nil
}

func (a *app) runFiles(w io.Writer, sourceDir string) error {
	files, err := a.enumerator.Enumerate(sourceDir)
	rep := &types.Report{SourceDir: sourceDir, Files: fileEntries(files)}
	if err != nil {
		a.log.WithRoot(sourceDir).Warnw("enumeration failed", "error", err, "partial", len(files))
		rep.Errors = []string{err.Error()}
	}
	if rerr := a.renderer.Render(w, rep); rerr != nil {
		return rerr
	}
	return err
}

func (a *app) runIncludes(w io.Writer, paths []string) error {
	results := a.scanner.ScanFiles(paths, a.cfg.Scan.Workers)
	for _, r := range results {
		if r.Err != nil {
			a.log.WithFile(r.Path).Warnw("include scan reported an error", "error", r.Err)
		}
	}

	if err := a.renderer.Render(w, &types.Report{Scanned: results}); err != nil {
		return err
	}
	if n := countFailed(results); n > 0 {
		return fmt.Errorf("%d of %d file(s) reported errors", n, len(results))
	}
	return nil
}

func fileEntries(paths []string) []types.FileEntry {
	entries := make([]types.FileEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, types.FileEntry{Path: p, URI: uri.FileURI(p)})
	}
	return entries
}

func countFailed(results []types.FileIncludes) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || r.Error != "" {
			n++
		}
	}
	return n
}
