package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"evalmarks/internal/config"
)

// XLSXWriter writes report tables as single-sheet workbooks
type XLSXWriter struct {
	paths *config.Paths
}

// NewXLSXWriter creates a new workbook writer instance
func NewXLSXWriter(paths *config.Paths) *XLSXWriter {
	return &XLSXWriter{paths: paths}
}

// WriteTable writes table to <output dir>/<table name>.xlsx and returns the path.
// Timestamps are written with a date-time number format.
func (w *XLSXWriter) WriteTable(table Table) (string, error) {
	path := filepath.Join(w.paths.OutputDir, table.Name+"."+config.FormatXLSX)

	slog.Info("Writing workbook",
		slog.String("full_path", path),
		slog.Int("record_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return path, fmt.Errorf("failed to write headers: %w", err)
	}

	if len(table.Headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return path, fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return path, fmt.Errorf("failed to style headers: %w", err)
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return path, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return path, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return path, fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}
