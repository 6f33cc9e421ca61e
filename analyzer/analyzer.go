// Package analyzer finds source files that no other local file references.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/viant/afs"

	"github.com/muze-github/muze/inspector"
	"github.com/muze-github/muze/manifest"
)

// DefaultIgnoreFile is read from the project root unless overridden
const DefaultIgnoreFile = ".gitignore"

var (
	// DefaultExtensions lists recognized source extensions in resolution preference order
	DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".vue"}
	// DefaultSkipDirs are never walked
	DefaultSkipDirs = []string{"node_modules", ".git", "dist"}

	// ErrManifestNotFound is returned when the project root has no package.json
	ErrManifestNotFound = errors.New("package.json not found, run muze in a project root")
)

// Analyzer builds a reference graph for one project root at a time.
type Analyzer struct {
	fs         afs.Service
	logger     *slog.Logger
	factory    *inspector.Factory
	extensions []string
	skipDirs   map[string]bool
	ignoreFile string
}

// Result is the outcome of one analysis run.
type Result struct {
	Root     string             `json:"root" yaml:"root"`
	Manifest *manifest.Manifest `json:"-" yaml:"-"`
	Scanned  int                `json:"scanned" yaml:"scanned"`
	Graph    *ReferenceGraph    `json:"-" yaml:"-"`
	Unused   []*SourceFile      `json:"unused" yaml:"unused"`
	entries  *EntryMatcher
}

// IsEntry reports whether file is an entry point of the analyzed project
func (r *Result) IsEntry(file *SourceFile) bool {
	return r.entries.IsEntry(file.Path)
}

// Unreachable returns source files that cannot be reached from any entry file
func (r *Result) Unreachable() []*SourceFile {
	return r.Graph.Unreachable(r.IsEntry)
}

// New creates an analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		fs:         afs.New(),
		logger:     slog.Default(),
		factory:    inspector.NewFactory(),
		extensions: DefaultExtensions,
		ignoreFile: DefaultIgnoreFile,
	}
	WithSkipDirs(DefaultSkipDirs...)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Extensions returns recognized source extensions in preference order
func (a *Analyzer) Extensions() []string {
	return a.extensions
}

// Analyze checks the manifest precondition, discovers source files, builds the
// reference graph and selects unused files.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	m, err := manifest.Load(ctx, a.fs, absRoot)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, absRoot)
		}
		return nil, err
	}
	rules, err := a.LoadIgnore(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	files, scanned, err := a.Discover(ctx, absRoot, rules)
	if err != nil {
		return nil, err
	}
	refGraph, err := a.BuildGraph(ctx, absRoot, files)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Root:     absRoot,
		Manifest: m,
		Scanned:  scanned,
		Graph:    refGraph,
		entries:  NewEntryMatcher(m, absRoot),
	}
	result.Unused = FindUnused(refGraph.Files, result.IsEntry)
	a.logger.Debug("entry candidates", "root", absRoot, "candidates", result.entries.Candidates())
	a.logger.Debug("analysis complete",
		"root", absRoot,
		"scanned", scanned,
		"sources", len(files),
		"edges", len(refGraph.Edges),
		"unused", len(result.Unused))
	return result, nil
}

// LoadIgnore reads the configured ignore file from root; a missing file yields no rules
func (a *Analyzer) LoadIgnore(ctx context.Context, root string) (*IgnoreRules, error) {
	if a.ignoreFile == "" {
		return nil, nil
	}
	location := a.ignoreFile
	if !filepath.IsAbs(location) {
		location = filepath.Join(root, location)
	}
	exists, err := a.fs.Exists(ctx, location)
	if err != nil || !exists {
		return nil, nil
	}
	data, err := a.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", location, err)
	}
	return ParseIgnore(data), nil
}
