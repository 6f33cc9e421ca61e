package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/muze-github/muze/inspector/graph"
)

// ImportEdge records that ImportedBy references Source
type ImportEdge struct {
	Source     string           `json:"source" yaml:"source"`
	ImportedBy string           `json:"importedBy" yaml:"importedBy"`
	Specifier  string           `json:"specifier" yaml:"specifier"`
	Kind       graph.ImportKind `json:"kind" yaml:"kind"`
	Line       int              `json:"line" yaml:"line"`
}

// FileOutcome is the per-file result of the import scan. A file with Err set
// contributes no edges.
type FileOutcome struct {
	Path       string        `json:"path" yaml:"path"`
	Edges      []*ImportEdge `json:"edges,omitempty" yaml:"edges,omitempty"`
	Unresolved []string      `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Err        error         `json:"-" yaml:"-"`
}

// Failed reports whether the file could not be read or parsed
func (o *FileOutcome) Failed() bool {
	return o.Err != nil
}

// ReferenceGraph holds discovered files, their incoming counts and edges
type ReferenceGraph struct {
	Project  *graph.Project
	Files    []*SourceFile
	Edges    []*ImportEdge
	Outcomes []*FileOutcome
	index    map[string]*SourceFile
}

func newReferenceGraph(root string, files []*SourceFile) *ReferenceGraph {
	g := &ReferenceGraph{
		Project: &graph.Project{Name: filepath.Base(root), Type: "javascript", RootPath: root},
		Files:   files,
		index:   make(map[string]*SourceFile, len(files)),
	}
	for _, file := range files {
		file.References = 0
		g.index[file.Path] = file
	}
	return g
}

// Lookup returns the source file with the given absolute path
func (g *ReferenceGraph) Lookup(path string) (*SourceFile, bool) {
	file, ok := g.index[path]
	return file, ok
}

// Counts returns reference counts keyed by relative path
func (g *ReferenceGraph) Counts() map[string]int {
	result := make(map[string]int, len(g.Files))
	for _, file := range g.Files {
		result[file.RelativePath] = file.References
	}
	return result
}

// Failures returns outcomes of files that could not be parsed
func (g *ReferenceGraph) Failures() []*FileOutcome {
	var result []*FileOutcome
	for _, outcome := range g.Outcomes {
		if outcome.Failed() {
			result = append(result, outcome)
		}
	}
	return result
}

func (g *ReferenceGraph) addEdge(edge *ImportEdge) {
	target, ok := g.Lookup(edge.Source)
	if !ok {
		return
	}
	target.References++
	g.Edges = append(g.Edges, edge)
}

// Unreachable returns files not reachable from any entry by following edges,
// sorted by relative path.
func (g *ReferenceGraph) Unreachable(isEntry func(*SourceFile) bool) []*SourceFile {
	adjacency := make(map[string][]string)
	for _, edge := range g.Edges {
		adjacency[edge.ImportedBy] = append(adjacency[edge.ImportedBy], edge.Source)
	}
	visited := make(map[string]bool)
	var queue []string
	for _, file := range g.Files {
		if isEntry(file) {
			visited[file.Path] = true
			queue = append(queue, file.Path)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	var result []*SourceFile
	for _, file := range g.Files {
		if !visited[file.Path] {
			result = append(result, file)
		}
	}
	sortByRelativePath(result)
	return result
}

type cacheKey struct {
	fingerprint uint64
	ext         string
}

type parsed struct {
	file *graph.File
	err  error
}

// BuildGraph parses every file and counts resolved local references. Read and
// parse failures are recorded on the file's outcome and logged; they never
// abort the run.
func (a *Analyzer) BuildGraph(ctx context.Context, root string, files []*SourceFile) (*ReferenceGraph, error) {
	g := newReferenceGraph(root, files)
	cache := make(map[cacheKey]parsed)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := a.scanFile(ctx, g, file, cache)
		g.Outcomes = append(g.Outcomes, outcome)
		for _, edge := range outcome.Edges {
			g.addEdge(edge)
		}
	}
	g.Project.Init()
	return g, nil
}

func (a *Analyzer) scanFile(ctx context.Context, g *ReferenceGraph, file *SourceFile, cache map[cacheKey]parsed) *FileOutcome {
	outcome := &FileOutcome{Path: file.Path}
	src, err := a.fs.DownloadWithURL(ctx, file.Path)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to read %s: %w", file.RelativePath, err)
		a.logger.Warn("skipping unreadable file", "path", file.RelativePath, "error", err)
		return outcome
	}
	file.Fingerprint = graph.Fingerprint(src)
	return a.parse(ctx, g, file, src, outcome, cache)
}

func (a *Analyzer) parse(ctx context.Context, g *ReferenceGraph, file *SourceFile, src []byte, outcome *FileOutcome, cache map[cacheKey]parsed) *FileOutcome {
	key := cacheKey{fingerprint: file.Fingerprint, ext: file.Ext}
	entry, ok := cache[key]
	if !ok {
		parsedFile, err := a.factory.InspectSource(ctx, file.Path, src)
		entry = parsed{file: parsedFile, err: err}
		cache[key] = entry
	}
	if entry.err != nil {
		outcome.Err = entry.err
		a.logger.Warn("failed to parse file", "path", file.RelativePath, "error", entry.err)
		return outcome
	}
	parsedFile := *entry.file
	parsedFile.Name = filepath.Base(file.Path)
	parsedFile.Path = file.Path
	g.Project.AddFile(&parsedFile)

	dir := filepath.Dir(file.Path)
	for _, imp := range parsedFile.RelativeImports() {
		target, ok := a.Resolve(dir, imp.Path, g.index)
		if !ok {
			outcome.Unresolved = append(outcome.Unresolved, imp.Path)
			a.logger.Warn("unresolved import", "path", file.RelativePath, "specifier", imp.Path, "line", imp.Line)
			continue
		}
		outcome.Edges = append(outcome.Edges, &ImportEdge{
			Source:     target,
			ImportedBy: file.Path,
			Specifier:  imp.Path,
			Kind:       imp.Kind,
			Line:       imp.Line,
		})
	}
	return outcome
}

func sortByRelativePath(files []*SourceFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
}
