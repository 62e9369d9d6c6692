// Package main implements projcollect, which lists the C/C++ sources under a
// directory and the local headers a main file includes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// usageFormat is filled with the program name as invoked.
const usageFormat = `Invalid program call!
%s MainFile SourceDir OutDir
MainFile  - File that contains main() function
SourceDir - Directory that will be scanned recursively for required files
OutDir    - Directory to which all files required by main() will be copied

`

// errInvalidArguments is returned after the usage message was printed.
var errInvalidArguments = errors.New("invalid arguments: expected MainFile SourceDir OutDir")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	if err := fang.Execute(
		context.Background(),
		newRootCmd(afero.NewOsFs()),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

// options holds flag values shared by every subcommand.
type options struct {
	configPath string
	format     string
	color      string
	logLevel   string
	logFormat  string
	workers    int
	extensions []string
	ignored    []string
	separator  string
	all        bool
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "projcollect MainFile SourceDir OutDir",
		Short: "Collect the C/C++ files a program needs",
		Long: `projcollect enumerates the C and C++ sources below SourceDir and lists
the local headers that MainFile pulls in with #include "...".
OutDir is reported but nothing is copied yet.

A MainFile literally named files, includes or serve is taken as that
subcommand; pass it as ./files (or any other path form) instead.`,
		Example: `projcollect src/main.cpp src out
projcollect files src --format json
projcollect includes src/main.cpp src/util.c
projcollect serve ~/project`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				fmt.Fprintf(cmd.OutOrStdout(), usageFormat, programName(cmd))
				return errInvalidArguments
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, fsys, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runCollect(cmd.OutOrStdout(), args[0], args[1], args[2], opts.all)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default .projcollect.yaml if present)")
	pf.StringVarP(&opts.format, "format", "f", "", "report format: text, json or yaml")
	pf.StringVar(&opts.color, "color", "", "colorize text reports: auto, always or never")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	pf.IntVarP(&opts.workers, "workers", "w", 0, "parallel include scanners (default one per CPU)")
	pf.StringSliceVar(&opts.extensions, "ext", nil, "relevant file extensions (replaces the default list)")
	pf.StringSliceVar(&opts.ignored, "ignore", nil, "glob patterns of paths to skip, relative to SourceDir")
	pf.StringVar(&opts.separator, "separator", "", "separator used to join directory and entry names")

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "also scan every enumerated file for includes")

	cmd.AddCommand(
		newFilesCmd(opts, fsys),
		newIncludesCmd(opts, fsys),
		newServeCmd(opts, fsys),
	)

	return cmd
}

// programName returns the name the binary was invoked with, falling back to
// the command name.
func programName(cmd *cobra.Command) string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return os.Args[0]
	}
	return cmd.Root().Name()
}

func newFilesCmd(opts *options, fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:     "files SourceDir",
		Short:   "List relevant source files below a directory",
		Example: `projcollect files src --ext c,h --ignore "build/**"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, fsys, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runFiles(cmd.OutOrStdout(), args[0])
		},
	}
}

func newIncludesCmd(opts *options, fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:     "includes File...",
		Short:   "List the local includes of one or more files",
		Example: `projcollect includes src/main.cpp src/util.c`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, fsys, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runIncludes(cmd.OutOrStdout(), args)
		},
	}
}

func newServeCmd(opts *options, fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [SourceDir]",
		Short: "Serve the collector as an MCP server over stdio",
		Long: `serve exposes list_files, list_includes and collect as Model Context
Protocol tools. Paths given to the tools are resolved below SourceDir,
which defaults to the current directory.`,
		Example: `projcollect serve ~/project`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root string
			if len(args) > 0 {
				root = args[0]
			} else {
				var err error
				root, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
			}

			a, err := newApp(opts, fsys, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runServer(cmd.Context(), root)
		},
	}
}
