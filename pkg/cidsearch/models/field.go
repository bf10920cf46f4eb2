// Package models defines data structures for spreadsheet row search.
package models

import (
	"fmt"
	"strings"
)

// SearchField selects which resolved column a query is matched against.
type SearchField int

const (
	// FieldName searches the column labelled as the person's name.
	FieldName SearchField = iota
	// FieldPhone searches the column labelled as the phone number.
	FieldPhone
)

// String returns the lowercase field name.
func (f SearchField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPhone:
		return "phone"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Valid reports whether f is one of the known fields.
func (f SearchField) Valid() bool {
	return f == FieldName || f == FieldPhone
}

// ParseSearchField parses "name" or "phone" (case-insensitive).
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "phone":
		return FieldPhone, nil
	default:
		return 0, fmt.Errorf("unknown search field %q (must be name or phone)", s)
	}
}

// ColumnMapping maps a field to the zero-based column index it was bound to
// in a sheet's header row. A missing key means the label was not found.
type ColumnMapping map[SearchField]int

// Column returns the column bound to field, if any.
func (m ColumnMapping) Column(field SearchField) (int, bool) {
	col, ok := m[field]
	return col, ok
}

// SearchQuery is a single user search.
type SearchQuery struct {
	// Text is the substring to look for.
	Text string `json:"text"`
	// Field selects the column searched.
	Field SearchField `json:"field"`
}
