package stats_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/stats"
)

func TestCollector_Collect(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"package.json":        `{"name":"site","version":"1.4.0"}`,
		"src/a.ts":            "const a = 1\nexport default a\n",
		"src/b.ts":            "export {}",
		"src/c.js":            "module.exports = {}\n",
		"src/view.tsx":        "export {}\n",
		"README.md":           "# site\n",
		"node_modules/x/i.js": "ignored\n",
		"dist/bundle.js":      "ignored\n",
		".git/config":         "[core]\n",
	}
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}

	result, err := stats.New(afs.New(), nil).Collect(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, &stats.Stats{
		Name:       "site",
		Version:    "1.4.0",
		TypeScript: 2,
		JavaScript: 1,
		JSON:       1,
		Total:      6,
		Lines:      3 + 1 + 2 + 1,
	}, result)
}

func TestCollector_Collect_MissingManifest(t *testing.T) {
	_, err := stats.New(nil, nil).Collect(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzer.ErrManifestNotFound))
}

func TestStats_Render(t *testing.T) {
	color.NoColor = true
	s := &stats.Stats{Name: "site", Version: "next", VersionError: "invalid version", TypeScript: 1200, Lines: 1234567}

	var out bytes.Buffer
	require.NoError(t, s.Render(&out, "text"))
	assert.Contains(t, out.String(), "Name: site\n")
	assert.Contains(t, out.String(), "Version: next (invalid version)\n")
	assert.Contains(t, out.String(), "TypeScript files: 1,200\n")
	assert.Contains(t, out.String(), "Total lines: 1,234,567\n")

	out.Reset()
	require.NoError(t, s.Render(&out, "json"))
	assert.True(t, strings.Contains(out.String(), `"lines": 1234567`))

	assert.Error(t, s.Render(&out, "xml"))
}
