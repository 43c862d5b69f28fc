package store

import "unicode/utf8"

const (
	// NameSize is the on-disk width of the name field, terminator included.
	NameSize = 64
	// StatusSize is the on-disk width of a status field, terminator included.
	StatusSize = 16
)

// Record is one person entry. ID is its position in the table.
type Record struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Empty reports whether the slot has never been filled.
func (r Record) Empty() bool {
	return r.Name == ""
}

// Bound caps s to size-1 bytes, the room left once the terminator is
// accounted for. Excess input is dropped silently, never in the middle of
// a UTF-8 sequence.
func Bound(s string, size int) string {
	if len(s) < size {
		return s
	}
	cut := size - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
