package ingest

import "strings"

var (
	dueDateAliases     = []string{"due date", "due_date", "date", "alert date", "date of service"}
	mcnAliases         = []string{"mc#", "mcn", "mc_number", "mc", "mc number"}
	nameAliases        = []string{"name", "patient name"}
	programAliases     = []string{"program"}
	typeAliases        = []string{"type"}
	descriptionAliases = []string{"description", "details"}
	alertNumberAliases = []string{"alert_number", "alertnumber", "alert number", "id", "reportid"}
)

// GenericRows is the permissive fallback for ordinary header-bearing CSV:
// the first record is the header, each logical field resolves through its
// alias list, and fields with no matching column come back empty instead of
// failing the row.
func GenericRows(records [][]string) []AlertRow {
	if len(records) < 2 {
		return nil
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	due := resolveColumn(header, dueDateAliases)
	mcn := resolveColumn(header, mcnAliases)
	name := resolveColumn(header, nameAliases)
	program := resolveColumn(header, programAliases)
	typ := resolveColumn(header, typeAliases)
	desc := resolveColumn(header, descriptionAliases)
	num := resolveColumn(header, alertNumberAliases)

	rows := make([]AlertRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := AlertRow{
			DueDate:     cellAt(record, due),
			MCN:         cellAt(record, mcn),
			Name:        cellAt(record, name),
			Program:     cellAt(record, program),
			Type:        cellAt(record, typ),
			Description: cellAt(record, desc),
			AlertNumber: cellAt(record, num),
		}
		if row == (AlertRow{}) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// resolveColumn tries every alias for an exact header match before falling
// back to substring containment, so "date" cannot steal a "due date" column
// from an earlier alias.
func resolveColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if h == alias {
				return i
			}
		}
	}
	for _, alias := range aliases {
		for i, h := range header {
			if strings.Contains(h, alias) {
				return i
			}
		}
	}
	return -1
}

func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
