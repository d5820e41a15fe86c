package ingest

import (
	"strings"

	"github.com/xpc-health/rosterflow/models/roster"
)

// canonicalKey turns a roster label into a FieldMap key, e.g.
// "Type of appointment" -> "type_of_appointment".
func canonicalKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

// extractColumnBased pulls one FieldMap per patient column out of a table with
// labels down column 0. Column 1 is a spacer in this layout, so patient data
// starts at column index 2; a column counts as a patient only if it has at
// least one non-empty cell.
func extractColumnBased(table roster.RawTable) []roster.FieldMap {
	// Rows whose first cell is blank carry no label and contribute no field.
	type labeledRow struct {
		key string
		row int
	}
	var fields []labeledRow
	width := 0
	for i, row := range table {
		if len(row) > width {
			width = len(row)
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			fields = append(fields, labeledRow{key: canonicalKey(row[0]), row: i})
		}
	}

	var patientColumns []int
	for col := 2; col < width; col++ {
		for row := range table {
			if strings.TrimSpace(table.Cell(row, col)) != "" {
				patientColumns = append(patientColumns, col)
				break
			}
		}
	}

	maps := make([]roster.FieldMap, 0, len(patientColumns))
	for _, col := range patientColumns {
		fm := make(roster.FieldMap, len(fields))
		for _, f := range fields {
			fm[f.key] = table.Cell(f.row, col)
		}
		maps = append(maps, fm)
	}
	return maps
}

// extractRowBased pulls one FieldMap per data row out of a table with headers
// across row 0. Entirely blank rows are skipped without being counted as
// errors. A table with fewer than 2 rows has no data at all, which is fatal.
func extractRowBased(table roster.RawTable) ([]roster.FieldMap, error) {
	if len(table) < 2 {
		return nil, ErrInsufficientRows
	}

	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var maps []roster.FieldMap
	for _, row := range table[1:] {
		if isBlankRow(row) {
			continue
		}
		fm := make(roster.FieldMap, len(headers))
		for col, header := range headers {
			if header == "" || col >= len(row) {
				continue
			}
			fm[canonicalKey(header)] = strings.TrimSpace(row[col])
		}
		maps = append(maps, fm)
	}
	return maps, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
