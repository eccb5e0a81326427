package exporter

import (
	"evalmarks/internal/config"
	"evalmarks/pkg/contracts/domain"
)

// Table is one report: a name, a header row and typed cell values.
// A nil cell is left empty.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// responseHeaders is the cleaned 11-column response schema
func responseHeaders() []string {
	headers := []string{
		domain.ColumnTimestamp,
		domain.ColumnEmail,
		domain.ColumnSection,
		domain.ColumnDoorEntryNumber,
		domain.ColumnTopic,
	}
	headers = append(headers, domain.EvaluationColumns[:]...)
	return append(headers, domain.ColumnScore)
}

// DisqualifiedTable lists disqualified responses with the reason for each
func DisqualifiedTable(disqualified []domain.Disqualification) Table {
	headers := append(responseHeaders(), domain.ColumnDisqualification)

	rows := make([][]interface{}, len(disqualified))
	for i, d := range disqualified {
		var door interface{} = d.DoorEntry
		if d.DoorNumber.Valid {
			door = d.DoorNumber.Value
		} else if d.DoorEntry == "" {
			door = nil
		}

		row := []interface{}{d.Timestamp, d.Email, d.Section, door, d.Topic}
		for _, e := range d.Evaluations {
			row = append(row, e)
		}
		row = append(row, d.RawScore, string(d.Reason))
		rows[i] = row
	}

	return Table{Name: config.ReportDisqualified, Headers: headers, Rows: rows}
}

// ParticipationTable lists each student's participation mark
func ParticipationTable(marks []domain.ParticipationMark) Table {
	rows := make([][]interface{}, len(marks))
	for i, m := range marks {
		rows[i] = []interface{}{m.Email, m.Section, m.Mark}
	}

	return Table{
		Name:    config.ReportParticipation,
		Headers: []string{domain.ColumnEmail, domain.ColumnSection, domain.ColumnParticipation},
		Rows:    rows,
	}
}

// PresentationTable lists the mean scores of each presentation group
func PresentationTable(marks []domain.PresentationMark) Table {
	headers := []string{domain.ColumnSection, domain.ColumnTopic}
	headers = append(headers, domain.EvaluationColumns[:]...)
	headers = append(headers, domain.ColumnScore)

	rows := make([][]interface{}, len(marks))
	for i, m := range marks {
		row := []interface{}{m.Section, m.Topic}
		for _, e := range m.Evaluations {
			row = append(row, nullCell(e))
		}
		rows[i] = append(row, nullCell(m.Score))
	}

	return Table{Name: config.ReportPresentation, Headers: headers, Rows: rows}
}
