// Package table reads and writes the property tables the pipeline runs over.
// CSV is the default format; paths ending in .xlsx use the first (or named)
// worksheet instead.
package table

import (
	"path/filepath"
	"strings"
)

// Options names the columns the pipeline reads and writes.
type Options struct {
	PropertyIDColumn string
	MapURLColumn     string
	LatitudeColumn   string
	LongitudeColumn  string

	// Sheet selects the worksheet for .xlsx files. Empty means the first
	// sheet on read and "Sheet1" on write.
	Sheet string

	// NullValues are cell values, besides the empty string, that mark a
	// missing map location.
	NullValues []string
}

func (o Options) withDefaults() Options {
	if o.PropertyIDColumn == "" {
		o.PropertyIDColumn = "Property ID"
	}
	if o.MapURLColumn == "" {
		o.MapURLColumn = "Map Location"
	}
	if o.LatitudeColumn == "" {
		o.LatitudeColumn = "Latitude"
	}
	if o.LongitudeColumn == "" {
		o.LongitudeColumn = "Longitude"
	}
	return o
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// columnIndex returns the position of name in header, comparing trimmed
// values, or -1.
func columnIndex(header []string, name string) int {
	name = strings.TrimSpace(name)
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// pad returns row extended with empty cells to at least n entries.
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
