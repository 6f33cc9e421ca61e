package graph

import (
	"path/filepath"
	"strings"
)

// Project represents a code project with its parsed source files
type Project struct {
	Name     string
	Type     string
	RootPath string
	Files    []*File
}

// AddFile appends a parsed file to the project
func (p *Project) AddFile(file *File) {
	p.Files = append(p.Files, file)
}

// Relative returns path relative to the project root using '/' separators.
// Paths outside the root are returned unchanged.
func (p *Project) Relative(path string) string {
	if p.RootPath == "" {
		return filepath.ToSlash(path)
	}
	relPath, err := filepath.Rel(p.RootPath, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}

// Init fills derived file attributes
func (p *Project) Init() {
	for _, file := range p.Files {
		if file.Name == "" && file.Path != "" {
			file.Name = filepath.Base(file.Path)
		}
	}
}
