package ingest

import "testing"

func TestStackedRowWithDisplayDate(t *testing.T) {
	record := []string{
		"STATE OF EXAMPLE", "COUNTY OFFICE", "PAGE 1", "DUE DATE",
		"11-15-2025", "11-17-2025", "12345", "DOE,JANE", "MEDICAID",
		"WRKRM", "POLICY RESPONSE", "9996", "TOTALS: 1",
	}
	rows := StackedRows([][]string{record})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.DueDate != "11-15-2025" || row.DisplayDate != "11-17-2025" {
		t.Fatalf("dates: %+v", row)
	}
	if row.MCN != "12345" || row.Name != "DOE,JANE" || row.AlertNumber != "9996" {
		t.Fatalf("payload: %+v", row)
	}
	if row.Program != "MEDICAID" || row.Type != "WRKRM" || row.Description != "POLICY RESPONSE" {
		t.Fatalf("payload: %+v", row)
	}
}

func TestStackedRowBlankDisplayDate(t *testing.T) {
	record := []string{
		"OFFICE", "11-15-2025", "", "12345", "DOE,JANE", "MEDICAID",
		"WRKRM", "POLICY RESPONSE", "9996",
	}
	rows := StackedRows([][]string{record})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].DisplayDate != "" || rows[0].MCN != "12345" {
		t.Fatalf("blank display date misparsed: %+v", rows[0])
	}
}

func TestStackedRowNoDisplayDateColumn(t *testing.T) {
	record := []string{
		"OFFICE", "11-15-2025", "12345", "DOE,JANE", "MEDICAID",
		"WRKRM", "POLICY RESPONSE", "9996",
	}
	rows := StackedRows([][]string{record})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].MCN != "12345" || rows[0].AlertNumber != "9996" {
		t.Fatalf("missing display-date column misaligned: %+v", rows[0])
	}
}

func TestStackedDropsNonAlertRows(t *testing.T) {
	records := [][]string{
		{"STATE OF EXAMPLE", "ALERT REPORT", "PAGE 1"},
		{"OFFICE", "11-15-2025", "12345"},
	}
	if rows := StackedRows(records); len(rows) != 0 {
		t.Fatalf("expected metadata and short rows dropped, got %d", len(rows))
	}
}

func TestGenericFallback(t *testing.T) {
	// Due date last so the stacked extractor finds no payload after its
	// anchor and the header-alias fallback has to do the work.
	text := "MC#,Patient Name,Program,Type,Details,Alert Number,Due Date\n" +
		"12345,\"DOE,JANE\",MEDICAID,WRKRM,POLICY RESPONSE,9996,11-15-2025\n"
	rows, err := Rows(text)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.DueDate != "11-15-2025" || row.MCN != "12345" || row.Name != "DOE,JANE" {
		t.Fatalf("alias resolution: %+v", row)
	}
	if row.Description != "POLICY RESPONSE" || row.AlertNumber != "9996" {
		t.Fatalf("alias resolution: %+v", row)
	}
}

func TestGenericMissingColumnsResolveEmpty(t *testing.T) {
	text := "Name,Description\nDOE JOHN,SOMETHING HAPPENED\n"
	rows, err := Rows(text)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].DueDate != "" || rows[0].MCN != "" || rows[0].Name != "DOE JOHN" {
		t.Fatalf("missing columns should be empty: %+v", rows[0])
	}
}

func TestRowsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t  "} {
		rows, err := Rows(in)
		if err != nil {
			t.Fatalf("empty input error: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("empty input rows: %d", len(rows))
		}
	}
}
