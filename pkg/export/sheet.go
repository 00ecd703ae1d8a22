package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxSheetName   = 31
	truncateMarker = "..."
)

type Column struct {
	Header string
	Width  float64
}

// Sheet is one formatted table; rendering turns it into a worksheet or CSV.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Book is a formatted, not yet rendered, export.
type Book struct {
	FileName string
	Sheets   []Sheet
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetNames hands out worksheet names that satisfy the xlsx limits and are
// unique within one workbook (case-insensitively, as Excel compares them).
type sheetNames map[string]bool

func (used sheetNames) take(name string) string {
	// Excel refuses a name that begins or ends with an apostrophe
	base := strings.Trim(sheetNameReplacer.Replace(name), " '")
	if base == "" {
		base = "Sheet"
	}
	candidate := truncate(base, maxSheetName)
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// truncate shortens s to at most n runes, ending in the truncation marker
// when anything was cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-len(truncateMarker)]) + truncateMarker
}
