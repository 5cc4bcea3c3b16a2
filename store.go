package sheetstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Store adapts one named range of a remote tabular source into a
// keyed record store. It holds no state between calls: every
// operation re-fetches the range, works on an in-memory projection
// and issues at most one remote write.
//
// A read-then-write pair (Insert, Update) is not transactional. A
// concurrent writer can alter the range between the fetch and the
// write; the last writer wins and no detection is attempted here.
type Store struct {
	transport Transport
	rangeName string
	logger    logrus.FieldLogger
}

// New creates a store over the given transport and range name.
func New(transport Transport, rangeName string, opts *Options) *Store {
	var logger logrus.FieldLogger = logrus.StandardLogger()
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}

	return &Store{
		transport: transport,
		rangeName: rangeName,
		logger:    logger,
	}
}

// Query returns the records matching criteria in sheet row order. A
// nil or empty criteria returns every record. No side effects.
func (s *Store) Query(ctx context.Context, criteria Criteria) ([]Record, error) {
	_, records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(records, criteria), nil
}

// Fields returns the field list derived from the header row. The
// first field is always IDField.
func (s *Store) Fields(ctx context.Context) ([]string, error) {
	fields, _, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return fields, nil
}

// Insert appends the given records to the range in one batched remote
// call, preserving input order. Records without an identifier get a
// generated one, checked for collisions against both the sheet
// contents and the records inserted earlier in the same batch. The
// returned records are copies carrying their identifiers; the inputs
// are not modified.
func (s *Store) Insert(ctx context.Context, records ...Record) ([]Record, error) {
	fields, existing, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	inserted := make([]Record, 0, len(records))
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rec := record.Clone()
		if rec.ID() == "" {
			id, err := NewID(existing)
			if err != nil {
				return nil, err
			}
			rec[IDField] = id
		}
		existing = append(existing, rec)
		inserted = append(inserted, rec)
		rows = append(rows, RecordToRow(fields, rec))
	}

	if err := s.transport.AppendRows(ctx, s.rangeName, rows); err != nil {
		return nil, fmt.Errorf("failed to append rows to %s: %w", s.rangeName, err)
	}

	s.logger.WithFields(logrus.Fields{
		"range": s.rangeName,
		"rows":  len(rows),
	}).Debug("appended records")

	return inserted, nil
}

// Update applies patch to every record matching criteria, issuing one
// batched remote write covering every touched cell. It returns the
// matching records with the whole patch applied, or nil when nothing
// matched or the patch was empty.
//
// Row offsets come from the same fetch the matcher ran on; rows
// inserted concurrently between fetch and write can shift the
// targets. The values API offers no revision token to detect this.
func (s *Store) Update(ctx context.Context, criteria Criteria, patch Record) ([]Record, error) {
	fields, records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var matched []int
	for i, record := range records {
		if criteria.Matches(record) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		s.logger.WithField("range", s.rangeName).Info("update matched no records")
		return nil, nil
	}

	// Resolve every patch column before accumulating writes, in a
	// fixed order so the batched write is deterministic.
	patchFields := make([]string, 0, len(patch))
	for field := range patch {
		patchFields = append(patchFields, field)
	}
	sort.Strings(patchFields)

	columns := make(map[string]string, len(patchFields))
	for _, field := range patchFields {
		pos := fieldPosition(fields, field)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		columns[field] = ColumnLetters(pos)
	}

	writes := make([]CellWrite, 0, len(matched)*len(patchFields))
	updated := make([]Record, 0, len(matched))
	for _, i := range matched {
		record := records[i]
		for _, field := range patchFields {
			record[field] = patch[field]
			writes = append(writes, CellWrite{
				Address: CellAddress{
					Range:  s.rangeName,
					Column: columns[field],
					// +2 converts the zero-based data index to a
					// 1-based sheet row below the header.
					Row: i + 2,
				},
				Value: patch[field],
			})
		}
		if len(patchFields) > 0 {
			updated = append(updated, record)
		}
	}

	if len(writes) == 0 {
		return nil, nil
	}

	if err := s.transport.BatchWriteCells(ctx, writes); err != nil {
		return nil, fmt.Errorf("failed to write cells in %s: %w", s.rangeName, err)
	}

	s.logger.WithFields(logrus.Fields{
		"range":   s.rangeName,
		"records": len(updated),
		"cells":   len(writes),
	}).Debug("updated records")

	return updated, nil
}

// fetch retrieves the full range and projects it into the field list
// and the ordered data records.
func (s *Store) fetch(ctx context.Context) ([]string, []Record, error) {
	rows, err := s.transport.FetchRange(ctx, s.rangeName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch range %s: %w", s.rangeName, err)
	}

	fields, records := ProjectRows(rows)
	return fields, records, nil
}
