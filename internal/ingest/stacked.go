package ingest

import (
	"strings"

	"alertrecon/internal/normalize"
)

// StackedRows extracts alert payloads from the stacked report layout, where
// each row carries a variable-length prefix of report metadata before the
// payload columns: due-date, optional display-date, MCN, name, program,
// type, description, alert-number. Rows without a date-shaped cell are
// metadata or footer rows and are dropped; rows with fewer than six cells
// after the date columns are malformed and are dropped too.
func StackedRows(records [][]string) []AlertRow {
	rows := make([]AlertRow, 0, len(records))
	for _, record := range records {
		if row, ok := extractStacked(record); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func extractStacked(record []string) (AlertRow, bool) {
	anchor := -1
	for i, cell := range record {
		if normalize.IsDate(cell) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return AlertRow{}, false
	}

	row := AlertRow{DueDate: strings.TrimSpace(record[anchor])}
	next := anchor + 1

	// The display-date column is sometimes missing entirely, so the offset
	// past the anchor has to be decided per row: a blank cell with at least
	// six cells after it reads as an explicitly empty display date. Known
	// format coupling: a variant with a different trailing-column count
	// could misparse here.
	if next < len(record) {
		cell := record[next]
		switch {
		case strings.TrimSpace(cell) == "" && len(record)-(next+1) >= 6:
			next++
		case normalize.IsDate(cell):
			row.DisplayDate = strings.TrimSpace(cell)
			next++
		}
	}

	if len(record)-next < 6 {
		return AlertRow{}, false
	}
	row.MCN = strings.TrimSpace(record[next])
	row.Name = strings.TrimSpace(record[next+1])
	row.Program = strings.TrimSpace(record[next+2])
	row.Type = strings.TrimSpace(record[next+3])
	row.Description = strings.TrimSpace(record[next+4])
	row.AlertNumber = strings.TrimSpace(record[next+5])
	// Anything after the alert number is report totals or a generation
	// timestamp and is ignored.
	return row, true
}
