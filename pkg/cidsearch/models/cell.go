package models

import "time"

// CellKind tags the variant held by a CellValue.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumeric
	CellDate
	CellText
	CellBoolean
	CellFormula
	// CellError covers error cells and anything else a decoder cannot
	// classify; only Raw is meaningful.
	CellError
)

// CellValue is a typed spreadsheet cell value.
type CellValue struct {
	Kind    CellKind
	Number  float64
	Time    time.Time
	Text    string
	Bool    bool
	Formula string
	// Raw is the decoder's default string for the cell.
	Raw string
}

// Numeric returns a numeric cell value.
func Numeric(v float64) CellValue {
	return CellValue{Kind: CellNumeric, Number: v}
}

// Date returns a date-formatted numeric cell value.
func Date(t time.Time) CellValue {
	return CellValue{Kind: CellDate, Time: t}
}

// Text returns a string cell value.
func Text(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

// Boolean returns a boolean cell value.
func Boolean(b bool) CellValue {
	return CellValue{Kind: CellBoolean, Bool: b}
}

// Formula returns a formula cell value holding the formula source.
func Formula(src string) CellValue {
	return CellValue{Kind: CellFormula, Formula: src}
}

// Raw returns an unclassified cell value carrying only its default string.
func Raw(s string) CellValue {
	return CellValue{Kind: CellError, Raw: s}
}

// IsEmpty reports whether the cell holds nothing displayable.
func (v CellValue) IsEmpty() bool {
	switch v.Kind {
	case CellEmpty:
		return true
	case CellText:
		return v.Text == ""
	case CellError:
		return v.Raw == ""
	default:
		return false
	}
}

// Cell is a single physical cell of a row.
type Cell struct {
	// Col is the column index (0-based).
	Col int
	// Value is the decoded value.
	Value CellValue
}
