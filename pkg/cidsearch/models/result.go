package models

import "time"

// FieldValue pairs a header label with a formatted cell value.
type FieldValue struct {
	// Label is the header cell text for the column ("" if the header is shorter).
	Label string `json:"label"`
	// Value is the formatted cell value.
	Value string `json:"value"`
}

// SearchResult is the first row of a sheet that matched a query.
// Results are immutable once published.
type SearchResult struct {
	// Workbook is the file name owning the sheet.
	Workbook string `json:"workbook"`
	// SourceName is the sheet name.
	SourceName string `json:"source_name"`
	// MatchedRowIndex is the 1-based row number of the match.
	MatchedRowIndex int `json:"matched_row_index"`
	// Elapsed is the wall-clock time spent scanning the sheet.
	Elapsed time.Duration `json:"-"`
	// Fields contains the whole matched row in physical column order.
	Fields []FieldValue `json:"fields"`
}

// ElapsedMillis returns Elapsed in whole milliseconds.
func (r SearchResult) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}
