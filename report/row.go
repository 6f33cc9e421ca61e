package report

import (
	"time"

	"github.com/muze-github/muze/analyzer"
)

// TimeLayout formats the Last Modified column
const TimeLayout = "2006-01-02 15:04:05"

// Columns are the report headers, in row order
var Columns = []string{"Path", "Size", "Last Modified", "Type", "References"}

// Row is one reported file
type Row struct {
	Path         string `json:"path" yaml:"path"`
	Size         string `json:"size" yaml:"size"`
	LastModified string `json:"lastModified" yaml:"lastModified"`
	Type         string `json:"type" yaml:"type"`
	References   int    `json:"references" yaml:"references"`
}

// Values returns the row cells in Columns order
func (r *Row) Values() []interface{} {
	return []interface{}{r.Path, r.Size, r.LastModified, r.Type, r.References}
}

// NewRows converts source files into report rows
func NewRows(files []*analyzer.SourceFile) []Row {
	rows := make([]Row, 0, len(files))
	for _, file := range files {
		rows = append(rows, Row{
			Path:         file.RelativePath,
			Size:         FormatSize(file.Size),
			LastModified: formatTime(file.ModTime),
			Type:         file.Ext,
			References:   file.References,
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimeLayout)
}
