package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muze-github/muze/inspector/graph"
	"github.com/muze-github/muze/inspector/script"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts its module references
	InspectSource(ctx context.Context, src []byte) (*graph.File, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	inspectors map[script.Language]Inspector
}

// NewFactory creates a new inspector factory
func NewFactory() *Factory {
	return &Factory{
		inspectors: make(map[script.Language]Inspector),
	}
}

// Supports reports whether filename has a parseable extension
func (f *Factory) Supports(filename string) bool {
	_, ok := script.LanguageFor(filepath.Ext(filename))
	return ok
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	language, ok := script.LanguageFor(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if inspector, ok := f.inspectors[language]; ok {
		return inspector, nil
	}
	inspector := script.NewInspector(language)
	f.inspectors[language] = inspector
	return inspector, nil
}

// InspectSource is a convenience method that parses src as the language of filename
func (f *Factory) InspectSource(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	file, err := inspector.InspectSource(ctx, src)
	if err != nil {
		return nil, err
	}
	file.Name = filepath.Base(filename)
	file.Path = filename
	return file, nil
}
