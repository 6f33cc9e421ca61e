package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the export location used when none is given
const DefaultFile = "unused-files.xlsx"

// SheetName names the spreadsheet tab holding the rows
const SheetName = "Unused Files"

// ErrUnsupportedFormat is returned for export locations with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Exporter writes report rows to a file, choosing the format by extension
type Exporter struct {
	fs afs.Service
}

// NewExporter creates an exporter writing through fs
func NewExporter(fs afs.Service) *Exporter {
	if fs == nil {
		fs = afs.New()
	}
	return &Exporter{fs: fs}
}

// Export encodes rows for location and uploads the result
func (e *Exporter) Export(ctx context.Context, location string, rows []Row) error {
	data, err := Encode(location, rows)
	if err != nil {
		return err
	}
	if err := e.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report %s: %w", location, err)
	}
	return nil
}

// CheckFormat returns ErrUnsupportedFormat when location has no known report extension
func CheckFormat(location string) error {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".xlsx", ".csv", ".md", ".markdown", ".html", ".htm", ".json", ".yaml", ".yml":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(location))
}

// Encode renders rows in the format implied by the location's extension:
// .xlsx, .csv, .md, .html, .json or .yaml/.yml.
func Encode(location string, rows []Row) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(location))
	switch ext {
	case ".xlsx":
		return encodeSpreadsheet(rows)
	case ".csv":
		return []byte(newTable(rows).RenderCSV() + "\n"), nil
	case ".md", ".markdown":
		return []byte(newTable(rows).RenderMarkdown() + "\n"), nil
	case ".html", ".htm":
		return []byte(newTable(rows).RenderHTML() + "\n"), nil
	case ".json":
		data, err := json.MarshalIndent(nonNil(rows), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		return yaml.Marshal(nonNil(rows))
	}
	return nil, CheckFormat(location)
}

func nonNil(rows []Row) []Row {
	if rows == nil {
		return []Row{}
	}
	return rows
}

func newTable(rows []Row) table.Writer {
	tbl := table.NewWriter()
	header := make(table.Row, len(Columns))
	for i, column := range Columns {
		header[i] = column
	}
	tbl.AppendHeader(header)
	for i := range rows {
		tbl.AppendRow(rows[i].Values())
	}
	return tbl
}

func encodeSpreadsheet(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(Columns))
	for i, column := range Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := rows[i].Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 60); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "C", 20); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
