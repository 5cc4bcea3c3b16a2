package sheetstore

import "errors"

var (
	// ErrUnknownField is returned when an update patch names a field
	// that does not exist in the sheet header.
	ErrUnknownField = errors.New("unknown field")
)
