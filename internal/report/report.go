// Package report renders collect results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/projcollect/internal/types"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user supplied format name. An empty name selects
// text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", name)
	}
}

// Renderer writes reports in one format.
type Renderer struct {
	format  Format
	heading *color.Color
	label   *color.Color
	failure *color.Color
}

// New creates a Renderer. Colour only applies to the text format.
func New(format Format, useColor bool) *Renderer {
	r := &Renderer{
		format:  format,
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Bold),
		failure: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.heading, r.label, r.failure} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes rep to w.
func (r *Renderer) Render(w io.Writer, rep *types.Report) error {
	rep = normalize(rep)

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatText, "":
		return r.renderText(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", r.format)
	}
}

func (r *Renderer) renderText(w io.Writer, rep *types.Report) error {
	var sb strings.Builder

	if rep.MainFile != "" {
		sb.WriteString(r.label.Sprint("Main file:  ") + rep.MainFile + "\n")
	}
	if rep.SourceDir != "" {
		sb.WriteString(r.label.Sprint("Source dir: ") + rep.SourceDir + "\n")
	}
	if rep.OutDir != "" {
		sb.WriteString(r.label.Sprint("Output dir: ") + rep.OutDir + "\n")
	}

	if rep.SourceDir != "" || len(rep.Files) > 0 {
		r.section(&sb, "Files", len(rep.Files))
		for _, f := range rep.Files {
			sb.WriteString("  " + f.Path + "\n")
		}
	}

	if rep.MainFile != "" || len(rep.Includes) > 0 {
		r.section(&sb, "Includes", len(rep.Includes))
		for _, inc := range rep.Includes {
			sb.WriteString("  " + inc + "\n")
		}
	}

	if len(rep.Scanned) > 0 {
		r.section(&sb, "Scanned", len(rep.Scanned))
		for _, fi := range rep.Scanned {
			sb.WriteString("  " + fi.Path + "\n")
			for _, inc := range fi.Includes {
				sb.WriteString("    -> " + inc + "\n")
			}
			if fi.Error != "" {
				sb.WriteString("    " + r.failure.Sprint("! "+fi.Error) + "\n")
			}
		}
	}

	if len(rep.Errors) > 0 {
		r.section(&sb, "Errors", len(rep.Errors))
		for _, msg := range rep.Errors {
			sb.WriteString("  " + r.failure.Sprint(msg) + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) section(sb *strings.Builder, title string, count int) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(r.heading.Sprintf("%s (%d)", title, count) + "\n")
}

// normalize returns a copy of rep with nil lists replaced by empty ones so
// encoders emit [] instead of null.
func normalize(rep *types.Report) *types.Report {
	if rep == nil {
		return &types.Report{Files: []types.FileEntry{}, Includes: []string{}}
	}
	out := *rep
	if out.Files == nil {
		out.Files = []types.FileEntry{}
	}
	if out.Includes == nil {
		out.Includes = []string{}
	}
	return &out
}
