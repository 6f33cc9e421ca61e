// Package stats collects code statistics for a project tree.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/manifest"
)

// lineCounted are the extensions whose lines are totalled
var lineCounted = map[string]bool{".ts": true, ".js": true, ".json": true}

// Stats summarizes a project tree
type Stats struct {
	Name         string `json:"name,omitempty"`
	Version      string `json:"version,omitempty"`
	VersionError string `json:"versionError,omitempty"`
	Repository   string `json:"repository,omitempty"`
	TypeScript   int    `json:"typescript"`
	JavaScript   int    `json:"javascript"`
	JSON         int    `json:"json"`
	Total        int    `json:"total"`
	Lines        int    `json:"lines"`
}

// Collector walks a project and counts files and lines
type Collector struct {
	fs       afs.Service
	logger   *slog.Logger
	skipDirs map[string]bool
}

// New creates a collector skipping the given directory names (analyzer defaults when empty)
func New(fs afs.Service, logger *slog.Logger, skipDirs ...string) *Collector {
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(skipDirs) == 0 {
		skipDirs = analyzer.DefaultSkipDirs
	}
	c := &Collector{fs: fs, logger: logger, skipDirs: map[string]bool{}}
	for _, name := range skipDirs {
		c.skipDirs[name] = true
	}
	return c
}

// Collect requires a manifest in root, then counts .ts/.js/.json files, all
// files, and lines across the counted types.
func (c *Collector) Collect(ctx context.Context, root string) (*Stats, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(ctx, c.fs, absRoot)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", analyzer.ErrManifestNotFound, absRoot)
		}
		return nil, err
	}
	result := &Stats{Name: m.Name, Version: m.Version}
	if _, err := m.SemVer(); err != nil {
		result.VersionError = err.Error()
	}

	var counted []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !c.skipDirs[info.Name()], nil
		}
		result.Total++
		ext := strings.ToLower(filepath.Ext(info.Name()))
		switch ext {
		case ".ts":
			result.TypeScript++
		case ".js":
			result.JavaScript++
		case ".json":
			result.JSON++
		}
		if lineCounted[ext] {
			relative := strings.TrimPrefix(path.Join(filepath.ToSlash(parent), info.Name()), "/")
			counted = append(counted, filepath.Join(absRoot, filepath.FromSlash(relative)))
		}
		return true, nil
	}
	if err := c.fs.Walk(ctx, absRoot, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}
	for _, location := range counted {
		data, err := c.fs.DownloadWithURL(ctx, location)
		if err != nil {
			c.logger.Warn("failed to read file", "path", location, "error", err)
			continue
		}
		result.Lines += bytes.Count(data, []byte("\n")) + 1
	}
	return result, nil
}

// Render writes stats as text or json
func (s *Stats) Render(w io.Writer, format string) error {
	switch format {
	case "", "text":
		heading := color.New(color.FgBlue, color.Bold)
		muted := color.New(color.FgHiBlack)
		heading.Fprintln(w, "Project:")
		muted.Fprintf(w, "Name: %s\n", s.Name)
		if s.VersionError != "" {
			color.New(color.FgYellow).Fprintf(w, "Version: %s (%s)\n", s.Version, s.VersionError)
		} else {
			muted.Fprintf(w, "Version: %s\n", s.Version)
		}
		if s.Repository != "" {
			muted.Fprintf(w, "Repository: %s\n", s.Repository)
		}
		heading.Fprintln(w, "\nCode statistics:")
		muted.Fprintf(w, "TypeScript files: %s\n", humanize.Comma(int64(s.TypeScript)))
		muted.Fprintf(w, "JavaScript files: %s\n", humanize.Comma(int64(s.JavaScript)))
		muted.Fprintf(w, "JSON files: %s\n", humanize.Comma(int64(s.JSON)))
		muted.Fprintf(w, "Total files: %s\n", humanize.Comma(int64(s.Total)))
		muted.Fprintf(w, "Total lines: %s\n", humanize.Comma(int64(s.Lines)))
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	}
	return fmt.Errorf("unsupported stats format: %q", format)
}
