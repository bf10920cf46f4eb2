// Package parser turns decoded spreadsheets into search results: it formats
// cells, resolves header rows and scans rows for matches.
package parser

import (
	"math"
	"strconv"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

// DefaultDateLayout renders dates like "Mon Jan 02 15:04:05 UTC 2006", with
// the day always two digits.
const DefaultDateLayout = "Mon Jan 02 15:04:05 MST 2006"

// FormatOptions controls cell formatting.
type FormatOptions struct {
	// DateLayout is the time layout for date cells. Empty means DefaultDateLayout.
	DateLayout string
}

// FormatCell converts a cell value into its display string.
// Numbers are truncated to an integer so phone numbers never show up in
// scientific notation.
func FormatCell(v models.CellValue, opts FormatOptions) string {
	switch v.Kind {
	case models.CellEmpty:
		return ""
	case models.CellNumeric:
		return formatNumber(v.Number)
	case models.CellDate:
		layout := opts.DateLayout
		if layout == "" {
			layout = DefaultDateLayout
		}
		return v.Time.Format(layout)
	case models.CellText:
		return v.Text
	case models.CellBoolean:
		return strconv.FormatBool(v.Bool)
	case models.CellFormula:
		return v.Formula
	default:
		return v.Raw
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return strconv.FormatFloat(t, 'f', 0, 64)
	}
	return strconv.FormatInt(int64(t), 10)
}
