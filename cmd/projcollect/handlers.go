package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/projcollect/internal/types"
)

func (a *app) runServer(ctx context.Context, root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	a.root = absRoot

	a.log.WithRoot(absRoot).Infow("starting MCP server", "version", version)

	if err := a.newServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

func (a *app) newServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "projcollect",
		Version: version,
	}, nil)
	a.registerTools(server)
	return server
}

// resolvePath resolves p below the served root. Absolute paths are accepted
// when they already lie inside it.
func (a *app) resolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)

	var full string
	if filepath.IsAbs(p) {
		full = filepath.Clean(p)
	} else {
		full = filepath.Join(a.root, p)
	}

	rel, err := filepath.Rel(a.root, full)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", p)
	}
	return full, nil
}

func (a *app) handleListFiles(ctx context.Context, req *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, ListFilesOutput, error) {
	dir, err := a.resolvePath(input.Dir)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListFilesOutput{}, err
	}

	log := a.log.WithTool("list_files").WithRoot(dir)
	files, err := a.enumerator.Enumerate(dir)
	if err != nil {
		log.Warnw("enumeration failed", "error", err)
		return &mcp.CallToolResult{IsError: true}, ListFilesOutput{Dir: dir, Files: []types.FileEntry{}}, err
	}
	log.Debugw("enumerated", "files", len(files))

	return nil, ListFilesOutput{
		Dir:   dir,
		Files: fileEntries(files),
		Total: len(files),
	}, nil
}

func (a *app) handleListIncludes(ctx context.Context, req *mcp.CallToolRequest, input ListIncludesInput) (*mcp.CallToolResult, ListIncludesOutput, error) {
	if len(input.Paths) == 0 {
		return &mcp.CallToolResult{IsError: true}, ListIncludesOutput{Results: []types.FileIncludes{}},
			errors.New("at least one path is required")
	}

	paths := make([]string, 0, len(input.Paths))
	for _, p := range input.Paths {
		resolved, err := a.resolvePath(p)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, ListIncludesOutput{Results: []types.FileIncludes{}}, err
		}
		paths = append(paths, resolved)
	}

	results := a.scanner.ScanFiles(paths, a.cfg.Scan.Workers)
	failed := countFailed(results)
	a.log.WithTool("list_includes").Debugw("scanned", "files", len(results), "failed", failed)

	return nil, ListIncludesOutput{Results: results, Failed: failed}, nil
}

func (a *app) handleCollect(ctx context.Context, req *mcp.CallToolRequest, input CollectInput) (*mcp.CallToolResult, types.Report, error) {
	if strings.TrimSpace(input.MainFile) == "" {
		return &mcp.CallToolResult{IsError: true}, types.Report{}, errors.New("mainFile is required")
	}

	mainFile, err := a.resolvePath(input.MainFile)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, types.Report{}, err
	}
	sourceDir, err := a.resolvePath(input.SourceDir)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, types.Report{}, err
	}

	rep := a.collect(mainFile, sourceDir, "", input.All)
	a.log.WithTool("collect").Debugw("collected",
		"files", len(rep.Files),
		"includes", len(rep.Includes),
		"errors", len(rep.Errors),
	)

	return nil, *rep, nil
}
