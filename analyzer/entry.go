package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/muze-github/muze/manifest"
)

// EntryMatcher decides whether a file is a program entry point
type EntryMatcher struct {
	candidates []string
}

// NewEntryMatcher builds a matcher from manifest targets and conventional names under root
func NewEntryMatcher(m *manifest.Manifest, root string) *EntryMatcher {
	root = filepath.Clean(root)
	matcher := &EntryMatcher{}
	for _, candidate := range m.Entries(root) {
		if candidate == root {
			continue
		}
		matcher.candidates = append(matcher.candidates, candidate)
	}
	return matcher
}

// IsEntryFile reports whether file is an entry point of the project at root
func IsEntryFile(file *SourceFile, m *manifest.Manifest, root string) bool {
	return NewEntryMatcher(m, root).IsEntry(file.Path)
}

// IsEntry reports whether the absolute path equals a candidate or lies under a
// candidate directory. Within the candidate's directory, a file name that
// starts with the candidate name also matches (index.ts covers index.tsx); a
// candidate without an extension matches any extension (src/index covers
// src/index.ts).
func (e *EntryMatcher) IsEntry(path string) bool {
	if e == nil {
		return false
	}
	dir, name := filepath.Split(path)
	for _, candidate := range e.candidates {
		if path == candidate || strings.HasPrefix(path, candidate+string(filepath.Separator)) {
			return true
		}
		candidateDir, candidateName := filepath.Split(candidate)
		if dir != candidateDir {
			continue
		}
		if filepath.Ext(candidateName) == "" {
			if trimExt(name) == candidateName {
				return true
			}
			continue
		}
		if strings.HasPrefix(name, candidateName) {
			return true
		}
	}
	return false
}

// Candidates returns the absolute entry candidates
func (e *EntryMatcher) Candidates() []string {
	return e.candidates
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
