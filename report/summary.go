// Package report renders analysis results for the console and exports them to files.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/muze-github/muze/analyzer"
)

// Console output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Skipped is a file whose imports could not be read
type Skipped struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Summary is the printable outcome of a clean run
type Summary struct {
	Root         string    `json:"root" yaml:"root"`
	Scanned      int       `json:"scanned" yaml:"scanned"`
	Sources      int       `json:"sources" yaml:"sources"`
	Edges        int       `json:"edges" yaml:"edges"`
	Skipped      []Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Unused       []Row     `json:"unused" yaml:"unused"`
	Unreachable  []Row     `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
	Exported     string    `json:"exported,omitempty" yaml:"exported,omitempty"`
	Removed      []string  `json:"removed,omitempty" yaml:"removed,omitempty"`
	RemoveFailed []string  `json:"removeFailed,omitempty" yaml:"removeFailed,omitempty"`
}

// NewSummary builds a summary from an analysis result
func NewSummary(result *analyzer.Result) *Summary {
	s := &Summary{
		Root:    result.Root,
		Scanned: result.Scanned,
		Unused:  NewRows(result.Unused),
	}
	if result.Graph != nil {
		s.Sources = len(result.Graph.Files)
		s.Edges = len(result.Graph.Edges)
		for _, outcome := range result.Graph.Failures() {
			s.Skipped = append(s.Skipped, Skipped{
				Path:  result.Graph.Project.Relative(outcome.Path),
				Error: outcome.Err.Error(),
			})
		}
	}
	return s
}

// WithRemoval records the outcome of removing unused files
func (s *Summary) WithRemoval(removed, failed []*analyzer.SourceFile) *Summary {
	for _, file := range removed {
		s.Removed = append(s.Removed, file.RelativePath)
	}
	for _, file := range failed {
		s.RemoveFailed = append(s.RemoveFailed, file.RelativePath)
	}
	return s
}

// Render writes the summary in the requested format
func (s *Summary) Render(w io.Writer, format string) error {
	switch format {
	case "", FormatText:
		s.renderText(w)
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(s)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func (s *Summary) renderText(w io.Writer) {
	heading := color.New(color.FgBlue, color.Bold)
	muted := color.New(color.FgHiBlack)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed)

	heading.Fprintln(w, "Unused file analysis:")
	muted.Fprintf(w, "Total files: %d\n", s.Scanned)
	muted.Fprintf(w, "Source files: %d\n", s.Sources)
	muted.Fprintf(w, "Unused files: %d\n", len(s.Unused))
	if len(s.Skipped) > 0 {
		muted.Fprintf(w, "Skipped files: %d\n", len(s.Skipped))
	}

	if len(s.Unused) > 0 {
		fmt.Fprintln(w, "\nUnused files:")
		for _, row := range s.Unused {
			ok.Fprintf(w, "- %s (%s)\n", row.Path, row.Size)
		}
	}
	if len(s.Unreachable) > 0 {
		fmt.Fprintln(w, "\nUnreachable from entry files:")
		for _, row := range s.Unreachable {
			warn.Fprintf(w, "- %s (%s, %d references)\n", row.Path, row.Size, row.References)
		}
	}
	if s.Exported != "" {
		ok.Fprintf(w, "\nReport exported: %s\n", s.Exported)
	}
	for _, path := range s.Removed {
		muted.Fprintf(w, "Removed: %s\n", path)
	}
	for _, path := range s.RemoveFailed {
		fail.Fprintf(w, "Failed to remove: %s\n", path)
	}
}
