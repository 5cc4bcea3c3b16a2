package sheetstore_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"regexp"
	"testing"

	"github.com/sirupsen/logrus"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// fakeTransport records every call; rows is the block FetchRange
// serves.
type fakeTransport struct {
	rows [][]string

	fetchCalls  int
	appendCalls [][][]string
	batchCalls  [][]sheetstore.CellWrite

	fetchErr  error
	appendErr error
	batchErr  error
}

func (f *fakeTransport) FetchRange(ctx context.Context, rangeName string) ([][]string, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.rows, nil
}

func (f *fakeTransport) AppendRows(ctx context.Context, rangeName string, rows [][]string) error {
	f.appendCalls = append(f.appendCalls, rows)
	return f.appendErr
}

func (f *fakeTransport) BatchWriteCells(ctx context.Context, writes []sheetstore.CellWrite) error {
	f.batchCalls = append(f.batchCalls, writes)
	return f.batchErr
}

func quietOptions() *sheetstore.Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &sheetstore.Options{Logger: logger}
}

func newTestStore(rows [][]string) (*sheetstore.Store, *fakeTransport) {
	transport := &fakeTransport{rows: rows}
	return sheetstore.New(transport, "tasks", quietOptions()), transport
}

func taskRows() [][]string {
	return [][]string{
		{"Key", "Name", "Status"},
		{"AB12", "Write docs", "open"},
		{"CD34", "Ship release", "closed"},
	}
}

func TestStore_Query(t *testing.T) {
	store, transport := newTestStore(taskRows())

	records, err := store.Query(context.Background(), sheetstore.Criteria{"Status": "open"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Query() returned %d records, want 1", len(records))
	}
	want := sheetstore.Record{"ID": "AB12", "Name": "Write docs", "Status": "open"}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("Query()[0] = %v, want %v", records[0], want)
	}

	if len(transport.appendCalls) != 0 || len(transport.batchCalls) != 0 {
		t.Errorf("Query() issued writes: %d appends, %d batches",
			len(transport.appendCalls), len(transport.batchCalls))
	}
}

func TestStore_Query_NilCriteria(t *testing.T) {
	store, _ := newTestStore(taskRows())

	records, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Query(nil) returned %d records, want 2", len(records))
	}
}

func TestStore_Fields(t *testing.T) {
	store, _ := newTestStore(taskRows())

	fields, err := store.Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields() error: %v", err)
	}
	want := []string{"ID", "Name", "Status"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("Fields() = %v, want %v", fields, want)
	}
}

func TestStore_Insert_GeneratesID(t *testing.T) {
	store, transport := newTestStore(taskRows())

	inserted, err := store.Insert(context.Background(), sheetstore.Record{"Name": "X"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	if len(inserted) != 1 {
		t.Fatalf("Insert() returned %d records, want 1", len(inserted))
	}
	idPattern := regexp.MustCompile(`^[0-9A-F]{8}$`)
	if !idPattern.MatchString(inserted[0].ID()) {
		t.Errorf("Insert() assigned ID %q, want 8 uppercase hex characters", inserted[0].ID())
	}

	if len(transport.appendCalls) != 1 {
		t.Fatalf("Insert() issued %d append calls, want 1", len(transport.appendCalls))
	}
	rows := transport.appendCalls[0]
	if len(rows) != 1 {
		t.Fatalf("Insert() appended %d rows, want 1", len(rows))
	}
	want := []string{inserted[0].ID(), "X", ""}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("appended row = %v, want %v", rows[0], want)
	}
}

func TestStore_Insert_KeepsSuppliedID(t *testing.T) {
	store, transport := newTestStore(taskRows())

	inserted, err := store.Insert(context.Background(), sheetstore.Record{"ID": "EF56", "Name": "Y"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if inserted[0].ID() != "EF56" {
		t.Errorf("Insert() changed supplied ID to %q", inserted[0].ID())
	}
	if got := transport.appendCalls[0][0][0]; got != "EF56" {
		t.Errorf("appended ID cell = %q, want EF56", got)
	}
}

func TestStore_Insert_BatchOneAppendDistinctIDs(t *testing.T) {
	store, transport := newTestStore(taskRows())

	inserted, err := store.Insert(context.Background(),
		sheetstore.Record{"Name": "a"},
		sheetstore.Record{"Name": "b"},
		sheetstore.Record{"Name": "c"},
	)
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	if len(transport.appendCalls) != 1 {
		t.Fatalf("batch Insert() issued %d append calls, want 1", len(transport.appendCalls))
	}
	if len(transport.appendCalls[0]) != 3 {
		t.Fatalf("batch Insert() appended %d rows, want 3", len(transport.appendCalls[0]))
	}

	seen := make(map[string]bool)
	for _, record := range inserted {
		if seen[record.ID()] {
			t.Fatalf("duplicate ID %q assigned within one batch", record.ID())
		}
		seen[record.ID()] = true
	}

	// Input order preserved.
	for i, want := range []string{"a", "b", "c"} {
		if inserted[i]["Name"] != want {
			t.Errorf("inserted[%d].Name = %q, want %q", i, inserted[i]["Name"], want)
		}
	}
}

func TestStore_Insert_DoesNotMutateInput(t *testing.T) {
	store, _ := newTestStore(taskRows())

	input := sheetstore.Record{"Name": "X"}
	if _, err := store.Insert(context.Background(), input); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, ok := input["ID"]; ok {
		t.Errorf("Insert() mutated the input record: %v", input)
	}
}

func TestStore_Update_SingleCell(t *testing.T) {
	store, transport := newTestStore(taskRows())

	updated, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "AB12"},
		sheetstore.Record{"Status": "closed"},
	)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if len(updated) != 1 {
		t.Fatalf("Update() returned %d records, want 1", len(updated))
	}
	if updated[0]["Status"] != "closed" {
		t.Errorf("updated record Status = %q, want closed", updated[0]["Status"])
	}

	if len(transport.batchCalls) != 1 {
		t.Fatalf("Update() issued %d batch calls, want 1", len(transport.batchCalls))
	}
	writes := transport.batchCalls[0]
	if len(writes) != 1 {
		t.Fatalf("Update() accumulated %d cell writes, want 1", len(writes))
	}
	// Status is column index 2 -> "C"; AB12 is data row 0 -> sheet row 2.
	want := sheetstore.CellWrite{
		Address: sheetstore.CellAddress{Range: "tasks", Column: "C", Row: 2},
		Value:   "closed",
	}
	if writes[0] != want {
		t.Errorf("cell write = %+v, want %+v", writes[0], want)
	}
}

func TestStore_Update_MultiFieldReportedOnce(t *testing.T) {
	store, transport := newTestStore(taskRows())

	updated, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "CD34"},
		sheetstore.Record{"Name": "Renamed", "Status": "open"},
	)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if len(updated) != 1 {
		t.Fatalf("Update() returned %d records, want 1", len(updated))
	}
	if updated[0]["Name"] != "Renamed" || updated[0]["Status"] != "open" {
		t.Errorf("updated record missing patch fields: %v", updated[0])
	}

	if len(transport.batchCalls) != 1 {
		t.Fatalf("Update() issued %d batch calls, want 1", len(transport.batchCalls))
	}
	writes := transport.batchCalls[0]
	if len(writes) != 2 {
		t.Fatalf("Update() accumulated %d cell writes, want 2", len(writes))
	}
	// Patch fields apply in sorted order: Name (B3) then Status (C3).
	if writes[0].Address.String() != "tasks!B3" || writes[0].Value != "Renamed" {
		t.Errorf("writes[0] = %+v, want tasks!B3 = Renamed", writes[0])
	}
	if writes[1].Address.String() != "tasks!C3" || writes[1].Value != "open" {
		t.Errorf("writes[1] = %+v, want tasks!C3 = open", writes[1])
	}
}

func TestStore_Update_MultipleMatches(t *testing.T) {
	rows := [][]string{
		{"Key", "Name", "Status"},
		{"A1", "one", "open"},
		{"B2", "two", "closed"},
		{"C3", "three", "open"},
	}
	store, transport := newTestStore(rows)

	updated, err := store.Update(context.Background(),
		sheetstore.Criteria{"Status": "open"},
		sheetstore.Record{"Status": "stale"},
	)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if len(updated) != 2 {
		t.Fatalf("Update() returned %d records, want 2", len(updated))
	}

	writes := transport.batchCalls[0]
	if len(writes) != 2 {
		t.Fatalf("Update() accumulated %d writes, want 2", len(writes))
	}
	if writes[0].Address.Row != 2 || writes[1].Address.Row != 4 {
		t.Errorf("write rows = %d, %d, want 2 and 4",
			writes[0].Address.Row, writes[1].Address.Row)
	}
}

func TestStore_Update_NoMatchIsNoOp(t *testing.T) {
	store, transport := newTestStore(taskRows())

	updated, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "none"},
		sheetstore.Record{"Status": "x"},
	)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated != nil {
		t.Errorf("Update() = %v, want nil for zero matches", updated)
	}
	if len(transport.batchCalls) != 0 {
		t.Errorf("Update() issued %d batch calls on zero matches, want 0", len(transport.batchCalls))
	}
}

func TestStore_Update_UnknownFieldFailsBeforeWrite(t *testing.T) {
	store, transport := newTestStore(taskRows())

	_, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "AB12"},
		sheetstore.Record{"Bogus": "x"},
	)
	if !errors.Is(err, sheetstore.ErrUnknownField) {
		t.Fatalf("Update() error = %v, want ErrUnknownField", err)
	}
	if len(transport.batchCalls) != 0 {
		t.Errorf("Update() issued %d batch calls despite unknown field, want 0", len(transport.batchCalls))
	}
}

func TestStore_Update_EmptyPatch(t *testing.T) {
	store, transport := newTestStore(taskRows())

	updated, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "AB12"},
		sheetstore.Record{},
	)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated != nil {
		t.Errorf("Update() = %v, want nil for empty patch", updated)
	}
	if len(transport.batchCalls) != 0 {
		t.Errorf("Update() issued %d batch calls for empty patch, want 0", len(transport.batchCalls))
	}
}

func TestStore_TransportErrorsPropagate(t *testing.T) {
	wantErr := errors.New("quota exceeded")

	transport := &fakeTransport{rows: taskRows(), fetchErr: wantErr}
	store := sheetstore.New(transport, "tasks", quietOptions())
	if _, err := store.Query(context.Background(), nil); !errors.Is(err, wantErr) {
		t.Errorf("Query() error = %v, want wrapped %v", err, wantErr)
	}

	transport = &fakeTransport{rows: taskRows(), appendErr: wantErr}
	store = sheetstore.New(transport, "tasks", quietOptions())
	if _, err := store.Insert(context.Background(), sheetstore.Record{"Name": "x"}); !errors.Is(err, wantErr) {
		t.Errorf("Insert() error = %v, want wrapped %v", err, wantErr)
	}

	transport = &fakeTransport{rows: taskRows(), batchErr: wantErr}
	store = sheetstore.New(transport, "tasks", quietOptions())
	_, err := store.Update(context.Background(),
		sheetstore.Criteria{"ID": "AB12"}, sheetstore.Record{"Status": "x"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Update() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestStore_EveryOperationRefetches(t *testing.T) {
	store, transport := newTestStore(taskRows())
	ctx := context.Background()

	_, _ = store.Query(ctx, nil)
	_, _ = store.Fields(ctx)
	_, _ = store.Query(ctx, nil)

	if transport.fetchCalls != 3 {
		t.Errorf("fetchCalls = %d, want 3 (no caching between calls)", transport.fetchCalls)
	}
}
