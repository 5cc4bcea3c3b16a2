package sheetstore

import "strconv"

// Criteria is a conjunctive equality filter over record fields. Every
// entry must match for a record to pass; a nil or empty Criteria
// matches every record.
type Criteria map[string]string

// Matches reports whether the record satisfies every criteria entry
// under valuesEqual.
func (c Criteria) Matches(r Record) bool {
	for field, want := range c {
		if !valuesEqual(r[field], want) {
			return false
		}
	}
	return true
}

// Filter returns the records matching c, preserving input order.
func Filter(records []Record, c Criteria) []Record {
	var results []Record
	for _, record := range records {
		if c.Matches(record) {
			results = append(results, record)
		}
	}
	return results
}

// valuesEqual compares two cell values: exact string equality, or
// numeric equality when both sides parse as numbers (so "05" equals
// "5"). The empty string never parses as a number, so "" equals only
// "" and never a zero.
func valuesEqual(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	fa, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return false
	}
	fb, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return false
	}
	return fa == fb
}
