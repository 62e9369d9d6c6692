package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/projcollect/internal/types"
)

type (
	// ListFilesInput contains parameters for enumerating source files.
	ListFilesInput struct {
		Dir string `json:"dir,omitempty" jsonschema:"Directory to enumerate, relative to the served root (default: the root)"`
	}

	// ListFilesOutput contains the enumerated files.
	ListFilesOutput struct {
		Dir   string            `json:"dir"`
		Files []types.FileEntry `json:"files"`
		Total int               `json:"total"`
	}

	// ListIncludesInput contains parameters for scanning files for includes.
	ListIncludesInput struct {
		Paths []string `json:"paths" jsonschema:"Files to scan, relative to the served root"`
	}

	// ListIncludesOutput contains one result per requested file, in order.
	ListIncludesOutput struct {
		Results []types.FileIncludes `json:"results"`
		Failed  int                  `json:"failed,omitempty"`
	}

	// CollectInput contains parameters for a full collect run.
	CollectInput struct {
		MainFile  string `json:"mainFile" jsonschema:"File that contains main(), relative to the served root"`
		SourceDir string `json:"sourceDir,omitempty" jsonschema:"Directory to enumerate (default: the root)"`
		All       bool   `json:"all,omitempty" jsonschema:"Also scan every enumerated file for includes (default: false)"`
	}
)

func (a *app) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_files",
		Description: "Recursively list C/C++ source files (.h .hpp .c .cpp .inc .impl by default) below a directory. Hidden directories are included; symlinks are skipped.",
	}, a.handleListFiles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_includes",
		Description: "List the local includes (#include \"...\", including commented-out ones) of one or more files. System includes (#include <...>) are ignored. Per-file errors are reported inline.",
	}, a.handleListIncludes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect",
		Description: "Enumerate the source directory and list the local includes of the main file in one call. Optionally scans every enumerated file too.",
	}, a.handleCollect)
}
