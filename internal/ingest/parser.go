package ingest

import (
	"encoding/csv"
	"strings"
)

// AlertRow is one payload row pulled out of an export, fields still raw.
type AlertRow struct {
	DueDate     string
	DisplayDate string
	MCN         string
	Name        string
	Program     string
	Type        string
	Description string
	AlertNumber string
}

// Rows tokenizes a raw export and extracts alert rows. The stacked layout is
// tried first; when it yields nothing the input is assumed to be ordinary
// header-bearing CSV and the generic fallback runs instead. Empty input is
// not an error, it is just zero rows.
func Rows(text string) ([]AlertRow, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	records, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	rows := StackedRows(records)
	if len(rows) == 0 {
		rows = GenericRows(records)
	}
	return rows, nil
}

func tokenize(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}
