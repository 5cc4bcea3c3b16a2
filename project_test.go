package sheetstore_test

import (
	"reflect"
	"testing"

	sheetstore "github.com/ideamans/go-sheetstore"
)

func TestProjectRows(t *testing.T) {
	rows := [][]string{
		{"Key", "Name", "Status"},
		{"AB12", "Write docs", "open"},
		{"CD34", "Ship release"},
	}

	fields, records := sheetstore.ProjectRows(rows)

	wantFields := []string{"ID", "Name", "Status"}
	if !reflect.DeepEqual(fields, wantFields) {
		t.Errorf("fields = %v, want %v", fields, wantFields)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	want := sheetstore.Record{"ID": "AB12", "Name": "Write docs", "Status": "open"}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("records[0] = %v, want %v", records[0], want)
	}

	// Short row: trailing field absent, no error.
	if _, ok := records[1]["Status"]; ok {
		t.Errorf("records[1] should not carry Status, got %v", records[1])
	}
	if records[1].ID() != "CD34" {
		t.Errorf("records[1].ID() = %q, want %q", records[1].ID(), "CD34")
	}
}

func TestProjectRows_Empty(t *testing.T) {
	fields, records := sheetstore.ProjectRows(nil)
	if fields != nil || records != nil {
		t.Errorf("ProjectRows(nil) = %v, %v, want nil, nil", fields, records)
	}

	fields, records = sheetstore.ProjectRows([][]string{{"Key", "Name"}})
	if !reflect.DeepEqual(fields, []string{"ID", "Name"}) {
		t.Errorf("fields = %v, want [ID Name]", fields)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from header-only block, want 0", len(records))
	}
}

func TestProjectRows_ExtraCellsDropped(t *testing.T) {
	rows := [][]string{
		{"Key", "Name"},
		{"AB12", "x", "overflow"},
	}

	_, records := sheetstore.ProjectRows(rows)
	if len(records[0]) != 2 {
		t.Errorf("record carries %d fields, want 2: %v", len(records[0]), records[0])
	}
}

func TestRecordToRow(t *testing.T) {
	fields := []string{"ID", "Name", "Status"}

	tests := []struct {
		name   string
		record sheetstore.Record
		want   []string
	}{
		{
			name:   "full record",
			record: sheetstore.Record{"ID": "AB12", "Name": "x", "Status": "open"},
			want:   []string{"AB12", "x", "open"},
		},
		{
			name:   "absent fields become empty strings",
			record: sheetstore.Record{"Name": "x"},
			want:   []string{"", "x", ""},
		},
		{
			name:   "values are trimmed",
			record: sheetstore.Record{"ID": " AB12 ", "Name": "\tx\n"},
			want:   []string{"AB12", "x", ""},
		},
		{
			name:   "fields outside the list are ignored",
			record: sheetstore.Record{"ID": "AB12", "Bogus": "y"},
			want:   []string{"AB12", "", ""},
		},
		{
			name:   "nil record",
			record: nil,
			want:   []string{"", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sheetstore.RecordToRow(fields, tt.record)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RecordToRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectRows_RoundTrip(t *testing.T) {
	rows := [][]string{
		{"Key", "Name", "Status"},
		{"AB12", "Write docs", "open"},
		{"CD34", "Ship release", "closed"},
		{"EF56", "Fix bug", "open"},
	}

	fields, records := sheetstore.ProjectRows(rows)
	for i, record := range records {
		got := sheetstore.RecordToRow(fields, record)
		if !reflect.DeepEqual(got, rows[i+1]) {
			t.Errorf("round trip row %d = %v, want %v", i, got, rows[i+1])
		}
	}
}
