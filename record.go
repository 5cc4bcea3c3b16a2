package sheetstore

import (
	"strconv"
	"strings"
	"time"
)

// IDField is the reserved name of the identifier field. The first
// header cell of the range is always exposed under this name,
// whatever the physical sheet calls it.
const IDField = "ID"

// Record is a single logical row: a mapping from field name to the
// cell value as stored in the sheet. All values are strings; the
// typed accessors parse on read and format on write.
type Record map[string]string

// ID returns the record's identifier, or "" if it has none yet.
func (r Record) ID() string {
	return r[IDField]
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// GetAsString returns the value for col or defaultValue if absent.
func (r Record) GetAsString(col string, defaultValue string) string {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	return v
}

// GetAsInt64 returns the value as int64 or defaultValue if absent or
// not a number. Fractional cell values are truncated.
func (r Record) GetAsInt64(col string, defaultValue int64) int64 {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int64(f)
	}
	return defaultValue
}

// GetAsFloat64 returns the value as float64 or defaultValue if absent
// or not a number.
func (r Record) GetAsFloat64(col string, defaultValue float64) float64 {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return defaultValue
}

// GetAsBool returns the value as bool or defaultValue if absent or
// not recognizable as a boolean.
func (r Record) GetAsBool(col string, defaultValue bool) bool {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	switch {
	case strings.EqualFold(v, "true") || v == "1":
		return true
	case strings.EqualFold(v, "false") || v == "0":
		return false
	}
	return defaultValue
}

// GetAsStrings returns the value as a comma-separated list or
// defaultValue if absent.
func (r Record) GetAsStrings(col string, defaultValue []string) []string {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	if v == "" {
		return []string{}
	}
	return strings.Split(v, ",")
}

// GetAsTime returns the value as time.Time or defaultValue if absent
// or not parseable.
func (r Record) GetAsTime(col string, defaultValue time.Time) time.Time {
	v, ok := r[col]
	if !ok {
		return defaultValue
	}
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, v); err == nil {
			return t
		}
	}
	return defaultValue
}

// SetString sets a string value.
func (r Record) SetString(col string, value string) {
	r[col] = value
}

// SetInt64 sets an int64 value.
func (r Record) SetInt64(col string, value int64) {
	r[col] = strconv.FormatInt(value, 10)
}

// SetFloat64 sets a float64 value.
func (r Record) SetFloat64(col string, value float64) {
	r[col] = strconv.FormatFloat(value, 'g', -1, 64)
}

// SetStrings sets a []string value (stored as comma-separated string).
func (r Record) SetStrings(col string, value []string) {
	r[col] = strings.Join(value, ",")
}

// SetBool sets a bool value.
func (r Record) SetBool(col string, value bool) {
	if value {
		r[col] = "true"
	} else {
		r[col] = "false"
	}
}

// SetTime sets a time.Time value (stored as ISO 8601 string).
func (r Record) SetTime(col string, value time.Time) {
	r[col] = value.Format(time.RFC3339)
}
