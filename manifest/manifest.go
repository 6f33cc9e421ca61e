// Package manifest loads a project's package.json and answers entry-point questions.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/viant/afs"
)

// FileName is the manifest file looked up in a project root.
const FileName = "package.json"

// ErrNotFound is returned when a project root has no manifest.
var ErrNotFound = errors.New("manifest not found")

// FallbackEntries are conventional entry files checked in addition to declared targets.
var FallbackEntries = []string{"index.ts", "index.js", "main.ts", "main.js", "app.ts", "app.js"}

// Manifest holds the package.json fields used by muze.
type Manifest struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Main    string  `json:"main,omitempty" yaml:"main,omitempty"`
	Module  string  `json:"module,omitempty" yaml:"module,omitempty"`
	Browser Targets `json:"browser,omitempty" yaml:"browser,omitempty"`
	Bin     Targets `json:"bin,omitempty" yaml:"bin,omitempty"`
}

// Targets is a manifest field that is either a single path or an object of paths.
type Targets []string

// UnmarshalJSON accepts "path" or {"key": "path"}; non-string object values are skipped.
func (t *Targets) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*t = Targets{single}
		}
		return nil
	}
	var object map[string]interface{}
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("expected string or object: %w", err)
	}
	keys := make([]string, 0, len(object))
	for k := range object {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var result Targets
	for _, k := range keys {
		if value, ok := object[k].(string); ok && value != "" {
			result = append(result, value)
		}
	}
	*t = result
	return nil
}

// Parse decodes manifest content.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return m, nil
}

// Load reads dir/package.json through fs.
func Load(ctx context.Context, fs afs.Service, dir string) (*Manifest, error) {
	location := filepath.Join(dir, FileName)
	exists, err := fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return Parse(data)
}

// Targets returns the declared main/module/browser/bin targets, in that order.
func (m *Manifest) Targets() []string {
	var result []string
	for _, target := range []string{m.Main, m.Module} {
		if target != "" {
			result = append(result, target)
		}
	}
	result = append(result, m.Browser...)
	result = append(result, m.Bin...)
	return result
}

// Entries returns the absolute entry candidates under root: declared targets
// followed by FallbackEntries.
func (m *Manifest) Entries(root string) []string {
	var candidates []string
	if m != nil {
		candidates = append(candidates, m.Targets()...)
	}
	candidates = append(candidates, FallbackEntries...)
	result := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if filepath.IsAbs(candidate) {
			result = append(result, filepath.Clean(candidate))
			continue
		}
		result = append(result, filepath.Join(root, candidate))
	}
	return result
}

// SemVer parses the manifest version.
func (m *Manifest) SemVer() (*semver.Version, error) {
	if m.Version == "" {
		return nil, fmt.Errorf("%s has no version", FileName)
	}
	version, err := semver.StrictNewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", m.Version, err)
	}
	return version, nil
}
