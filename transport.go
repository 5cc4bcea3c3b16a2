package sheetstore

import (
	"context"
	"fmt"
)

// CellAddress identifies a single cell inside a named range. Row
// numbers are 1-based, with row 1 being the header.
type CellAddress struct {
	Range  string
	Column string // spreadsheet letters, e.g. "B"
	Row    int
}

// String renders the address in A1 notation, e.g. "tasks!B5".
func (a CellAddress) String() string {
	return fmt.Sprintf("%s!%s%d", a.Range, a.Column, a.Row)
}

// CellWrite is a single-cell value assignment.
type CellWrite struct {
	Address CellAddress
	Value   string
}

// Transport is the remote tabular-data collaborator. Implementations
// own authentication, retry policy and deadlines; the store issues
// plain calls and propagates whatever they return.
type Transport interface {
	// FetchRange returns the full populated block of the named range,
	// row-major, header row first.
	FetchRange(ctx context.Context, rangeName string) ([][]string, error)

	// AppendRows appends rows after the last populated row of the range.
	AppendRows(ctx context.Context, rangeName string, rows [][]string) error

	// BatchWriteCells applies every cell write in one remote round trip.
	BatchWriteCells(ctx context.Context, writes []CellWrite) error
}
