package sheetstore_test

import (
	"testing"

	sheetstore "github.com/ideamans/go-sheetstore"
)

func TestColumnLetters(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{703, "AAB"},
	}

	for _, tt := range tests {
		if got := sheetstore.ColumnLetters(tt.index); got != tt.want {
			t.Errorf("ColumnLetters(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestColumnLetters_Monotonic(t *testing.T) {
	// Bijective base-26 ordering: shorter strings sort first, equal
	// lengths sort lexicographically.
	less := func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	}

	prev := sheetstore.ColumnLetters(0)
	for i := 1; i <= 2000; i++ {
		cur := sheetstore.ColumnLetters(i)
		if !less(prev, cur) {
			t.Fatalf("ColumnLetters not monotonic at %d: %q then %q", i, prev, cur)
		}
		prev = cur
	}
}
