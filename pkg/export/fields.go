package export

import "strings"

const (
	FieldContent    = "content"
	FieldNextAction = "next_action"
)

// fieldNames lists, per logical field, the keys a record may carry it under.
// Current name first; the others are what rows written before the rename use.
var fieldNames = map[string][]string{
	FieldContent:    {"content", "details"},
	FieldNextAction: {"next_action", "action"},
}

// Resolve reads a logical field from a loosely keyed record. When several
// accepted keys hold a value they are joined with a blank line, in table order.
func Resolve(rec map[string]string, logical string) string {
	names, ok := fieldNames[logical]
	if !ok {
		names = []string{logical}
	}
	var parts []string
	for _, n := range names {
		if v := strings.TrimSpace(rec[n]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n\n")
}
