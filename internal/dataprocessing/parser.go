package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "evalmarks/internal/errors"
	"evalmarks/pkg/contracts/domain"
)

// InputColumnCount is the fixed width of the survey export
const InputColumnCount = 12

// Positional layout of the survey export
const (
	colTimestamp = iota
	colEmail
	colSection
	colDoorEntry
	colTopic
	colEvaluate1
	colEvaluate2
	colEvaluate3
	colEvaluate4
	colEvaluate5
	colComments
	colScore
)

// timestampLayouts are the textual forms accepted for the Timestamp column
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// ParseFile reads the survey workbook and returns one Response per data row.
// An empty sheet name selects the first sheet.
func ParseFile(filePath, sheet string) ([]domain.Response, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("file", filePath)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewValidationError("workbook has no sheets").
				WithContext("file", filePath)
		}
		sheet = sheets[0]
	}

	// Raw values keep date cells as serial numbers and numbers unformatted
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("file", filePath)
	}

	slog.Info("Read survey sheet",
		slog.String("file", filePath),
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)))

	return ParseRows(rows)
}

// ParseRows converts raw sheet rows (header first) into responses.
// The comments column is dropped and blank rows are skipped.
func ParseRows(rows [][]string) ([]domain.Response, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("sheet is empty")
	}

	header := trimTrailingBlank(rows[0])
	if len(header) != InputColumnCount {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("expected %d columns in header row, found %d", InputColumnCount, len(header)))
	}

	responses := make([]domain.Response, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		sheetRow := i + 1
		row := rows[i]
		if isBlank(row) {
			continue
		}
		if len(row) > InputColumnCount {
			row = trimTrailingBlank(row)
		}
		if len(row) > InputColumnCount {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("row %d has %d columns, expected %d", sheetRow, len(row), InputColumnCount))
		}
		cells := make([]string, InputColumnCount)
		copy(cells, row)

		ts, err := ParseTimestamp(cells[colTimestamp])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("invalid timestamp in row %d", sheetRow), err).
				WithContext("row", sheetRow).
				WithContext("value", cells[colTimestamp])
		}

		responses = append(responses, domain.Response{
			Row:       sheetRow,
			Timestamp: ts,
			Email:     cells[colEmail],
			Section:   cells[colSection],
			DoorEntry: cells[colDoorEntry],
			Topic:     cells[colTopic],
			Evaluations: [domain.EvaluationCount]string{
				cells[colEvaluate1],
				cells[colEvaluate2],
				cells[colEvaluate3],
				cells[colEvaluate4],
				cells[colEvaluate5],
			},
			RawScore: cells[colScore],
		})
	}

	slog.Debug("Parsed survey responses", slog.Int("responses", len(responses)))
	return responses, nil
}

// ParseTimestamp accepts an Excel date serial or one of the textual layouts
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return time.Time{}, fmt.Errorf("date serial %q out of range", value)
		}
		return excelize.ExcelDateToTime(serial, false)
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func trimTrailingBlank(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
