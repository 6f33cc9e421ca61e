package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/report"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes  int64
		expect string
	}{
		{bytes: 0, expect: "0.00 B"},
		{bytes: 1023, expect: "1023.00 B"},
		{bytes: 1024, expect: "1.00 KB"},
		{bytes: 1536, expect: "1.50 KB"},
		{bytes: 5 * 1024 * 1024, expect: "5.00 MB"},
		{bytes: 3 * 1024 * 1024 * 1024, expect: "3.00 GB"},
		{bytes: 2048 * 1024 * 1024 * 1024, expect: "2048.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, report.FormatSize(tt.bytes))
	}
}

func sampleRows() []report.Row {
	modified := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	return report.NewRows([]*analyzer.SourceFile{
		{RelativePath: "src/old.ts", Size: 2048, ModTime: modified, Ext: ".ts"},
		{RelativePath: "src/legacy.vue", Size: 12, ModTime: modified, Ext: ".vue"},
	})
}

func TestNewRows(t *testing.T) {
	rows := sampleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, report.Row{
		Path:         "src/old.ts",
		Size:         "2.00 KB",
		LastModified: "2024-03-09 14:05:00",
		Type:         ".ts",
		References:   0,
	}, rows[0])
}

func TestEncode(t *testing.T) {
	rows := sampleRows()

	t.Run("csv", func(t *testing.T) {
		data, err := report.Encode("report.csv", rows)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Path,Size,Last Modified,Type,References", lines[0])
		assert.Equal(t, "src/old.ts,2.00 KB,2024-03-09 14:05:00,.ts,0", lines[1])
	})

	t.Run("markdown", func(t *testing.T) {
		data, err := report.Encode("REPORT.MD", rows)
		require.NoError(t, err)
		assert.Contains(t, string(data), "| Path | Size | Last Modified | Type | References |")
		assert.Contains(t, string(data), "src/legacy.vue")
	})

	t.Run("html", func(t *testing.T) {
		data, err := report.Encode("report.html", rows)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<table")
		assert.Contains(t, string(data), "src/old.ts")
	})

	t.Run("json", func(t *testing.T) {
		data, err := report.Encode("report.json", rows)
		require.NoError(t, err)
		var decoded []report.Row
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, rows, decoded)

		data, err = report.Encode("empty.json", nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := report.Encode("report.yaml", rows)
		require.NoError(t, err)
		var decoded []report.Row
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, rows, decoded)
	})

	t.Run("xlsx", func(t *testing.T) {
		data, err := report.Encode(report.DefaultFile, rows)
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()
		sheetRows, err := f.GetRows(report.SheetName)
		require.NoError(t, err)
		require.Len(t, sheetRows, 3)
		assert.Equal(t, report.Columns, sheetRows[0])
		assert.Equal(t, []string{"src/old.ts", "2.00 KB", "2024-03-09 14:05:00", ".ts", "0"}, sheetRows[1])
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := report.Encode("report.pdf", rows)
		require.Error(t, err)
		assert.True(t, errors.Is(err, report.ErrUnsupportedFormat))
	})
}

func TestExporter_Export(t *testing.T) {
	location := filepath.Join(t.TempDir(), "unused.csv")
	exporter := report.NewExporter(afs.New())
	require.NoError(t, exporter.Export(context.Background(), location, sampleRows()))
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Path,Size"))

	err = exporter.Export(context.Background(), filepath.Join(t.TempDir(), "unused.txt"), sampleRows())
	assert.True(t, errors.Is(err, report.ErrUnsupportedFormat))
}

func TestSummary_Render(t *testing.T) {
	color.NoColor = true
	summary := &report.Summary{
		Root:         "/project",
		Scanned:      12,
		Sources:      5,
		Skipped:      []report.Skipped{{Path: "d.ts", Error: "syntax error"}},
		Unused:       sampleRows(),
		Exported:     "unused-files.xlsx",
		Removed:      []string{"src/old.ts"},
		RemoveFailed: []string{"src/legacy.vue"},
	}

	var text bytes.Buffer
	require.NoError(t, summary.Render(&text, report.FormatText))
	output := text.String()
	assert.Contains(t, output, "Total files: 12\n")
	assert.Contains(t, output, "Source files: 5\n")
	assert.Contains(t, output, "Unused files: 2\n")
	assert.Contains(t, output, "Skipped files: 1\n")
	assert.Contains(t, output, "- src/old.ts (2.00 KB)\n")
	assert.Contains(t, output, "Report exported: unused-files.xlsx")
	assert.Contains(t, output, "Removed: src/old.ts")
	assert.Contains(t, output, "Failed to remove: src/legacy.vue")

	var encoded bytes.Buffer
	require.NoError(t, summary.Render(&encoded, report.FormatJSON))
	var decoded report.Summary
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &decoded))
	assert.Equal(t, *summary, decoded)

	encoded.Reset()
	require.NoError(t, summary.Render(&encoded, report.FormatYAML))
	assert.Contains(t, encoded.String(), "scanned: 12")

	assert.Error(t, summary.Render(&encoded, "xml"))
}

func TestNewSummary(t *testing.T) {
	root := t.TempDir()
	for name, content := range map[string]string{
		"package.json": `{"main":"a.ts"}`,
		"a.ts":         "import './b'\n",
		"b.ts":         "export {}\n",
		"c.ts":         "export {}\n",
		"d.ts":         "export const = (;\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	result, err := analyzer.New().Analyze(context.Background(), root)
	require.NoError(t, err)

	summary := report.NewSummary(result)
	assert.Equal(t, 5, summary.Scanned)
	assert.Equal(t, 4, summary.Sources)
	assert.Equal(t, 1, summary.Edges)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "d.ts", summary.Skipped[0].Path)
	require.Len(t, summary.Unused, 2)
	assert.Equal(t, "c.ts", summary.Unused[0].Path)

	summary.WithRemoval(result.Unused[:1], result.Unused[1:])
	assert.Equal(t, []string{"c.ts"}, summary.Removed)
	assert.Equal(t, []string{"d.ts"}, summary.RemoveFailed)
}
