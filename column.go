package sheetstore

// ColumnLetters converts a zero-based column index to its spreadsheet
// letter representation (0 -> "A", 25 -> "Z", 26 -> "AA", 702 -> "AAA").
// The numbering is bijective base-26: there is no symbol for zero in
// non-terminal positions, so the recursion steps on index/26 - 1
// rather than index/26.
func ColumnLetters(index int) string {
	letter := string(rune('A' + index%26))
	rest := index/26 - 1
	if rest < 0 {
		return letter
	}
	return ColumnLetters(rest) + letter
}
