package sheetstore

import "strings"

// ProjectRows splits a raw rectangular block into the field list and
// the ordered data records. Row 0 is the header; its first cell is
// always exposed as IDField regardless of the physical label. Data
// rows shorter than the header leave their trailing fields absent,
// and cells beyond the header width are dropped.
func ProjectRows(rows [][]string) ([]string, []Record) {
	if len(rows) == 0 {
		return nil, nil
	}

	fields := make([]string, len(rows[0]))
	copy(fields, rows[0])
	if len(fields) > 0 {
		fields[0] = IDField
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(fields))
		for j, value := range row {
			if j >= len(fields) {
				break
			}
			record[fields[j]] = value
		}
		records = append(records, record)
	}

	return fields, records
}

// RecordToRow flattens a record into one trimmed cell value per
// field, in field-list order. Absent fields become the empty string.
// The function is total: any record shape produces a row.
func RecordToRow(fields []string, record Record) []string {
	row := make([]string, len(fields))
	for i, field := range fields {
		row[i] = strings.TrimSpace(record[field])
	}
	return row
}

// fieldPosition returns the first position of name in fields, or -1
// if the field list does not contain it. Position is the
// authoritative key when headers carry duplicate names.
func fieldPosition(fields []string, name string) int {
	for i, field := range fields {
		if field == name {
			return i
		}
	}
	return -1
}
