package parser

import (
	"fmt"
	"strings"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"golang.org/x/text/cases"
)

// MinHeaderCells is the populated cell count a row must exceed to be taken
// as the header row.
const MinHeaderCells = 3

// HeaderLabels lists, per field, the label substrings that bind a header
// cell to that field.
type HeaderLabels map[models.SearchField][]string

// DefaultHeaderLabels returns the Arabic labels used by the source sheets.
func DefaultHeaderLabels() HeaderLabels {
	return HeaderLabels{
		models.FieldName:  {"الاسم"},
		models.FieldPhone: {"رقم الهاتف", "رقم التلفون"},
	}
}

// headerFieldOrder is the order labels are tested in for a single cell. A
// cell that matches an earlier field is not tested against later ones.
var headerFieldOrder = []models.SearchField{models.FieldName, models.FieldPhone}

// Header is a resolved header row.
type Header struct {
	// RowIndex is the header's row index (0-based).
	RowIndex int
	// Cells are the header row's cells.
	Cells []models.Cell
	// Mapping binds fields to column indexes.
	Mapping models.ColumnMapping

	labels map[int]string
}

// Label returns the formatted header text for column col, or "".
func (h *Header) Label(col int) string {
	return h.labels[col]
}

// Column returns the column bound to field or ErrFieldNotFound.
func (h *Header) Column(field models.SearchField) (int, error) {
	col, ok := h.Mapping.Column(field)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrFieldNotFound, field)
	}
	return col, nil
}

// ResolveHeader finds the header row of sheet and binds recognised labels
// to columns. Labels are compared case-insensitively; when several header
// cells match the same field, the rightmost one wins.
func ResolveHeader(sheet *models.Sheet, labels HeaderLabels, opts FormatOptions) (*Header, error) {
	if labels == nil {
		labels = DefaultHeaderLabels()
	}

	row, ok := findHeaderRow(sheet)
	if !ok {
		return nil, ErrHeaderNotFound
	}

	folded := make(map[models.SearchField][]string, len(labels))
	for field, variants := range labels {
		for _, v := range variants {
			if v == "" {
				continue
			}
			folded[field] = append(folded[field], fold(v))
		}
	}

	h := &Header{
		RowIndex: row.Index,
		Cells:    row.Cells,
		Mapping:  make(models.ColumnMapping),
		labels:   make(map[int]string, len(row.Cells)),
	}
	for _, cell := range row.Cells {
		text := FormatCell(cell.Value, opts)
		h.labels[cell.Col] = text

		value := fold(text)
		for _, field := range headerFieldOrder {
			if containsAny(value, folded[field]) {
				h.Mapping[field] = cell.Col
				break
			}
		}
	}

	return h, nil
}

// findHeaderRow returns the first row with more than MinHeaderCells
// populated cells.
func findHeaderRow(sheet *models.Sheet) (models.Row, bool) {
	for _, row := range sheet.Rows {
		if row.NonEmpty() > MinHeaderCells {
			return row, true
		}
	}
	return models.Row{}, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// fold applies Unicode case folding. Casers are stateful, so one is built
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
