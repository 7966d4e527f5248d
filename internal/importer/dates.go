package importer

import (
	"strings"
	"time"
)

// Date layouts seen in the field. Spreadsheets hand excelize anything from
// ISO dates to slash formats depending on the cell style.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// CanonicalDate converts a cell value to the "YYYY-MM-DD" form every stored
// date uses. Returns false when no known layout matches.
func CanonicalDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	// Drop a time component if one is present ("2024-02-15 00:00:00")
	if i := strings.IndexAny(raw, " T"); i > 0 && strings.Count(raw, " ") == 1 {
		if _, err := time.Parse("2006-01-02", raw[:i]); err == nil {
			raw = raw[:i]
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
