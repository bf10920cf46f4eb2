package parser

import (
	"strings"
	"time"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

// MatchOptions controls how row values are compared with the query.
type MatchOptions struct {
	// IgnoreCase folds case on both sides before comparing.
	IgnoreCase bool
	// TrimSpace trims surrounding whitespace from cell value and query.
	TrimSpace bool
	// SkipThroughHeader skips every row up to and including the detected
	// header row. By default only row 0 is skipped, wherever the header is.
	SkipThroughHeader bool
	// Format is used for both the compared value and the extracted fields.
	Format FormatOptions
}

// MatchRow scans the data rows of sheet for the first row whose cell in the
// query field's column contains the query text. It returns ErrFieldNotFound
// when the header has no column for the field and ErrNoMatch when no row
// matches.
func MatchRow(sheet *models.Sheet, header *Header, query models.SearchQuery, opts MatchOptions) (*models.SearchResult, error) {
	col, err := header.Column(query.Field)
	if err != nil {
		return nil, err
	}

	needle := normalize(query.Text, opts)
	firstRow := 1
	if opts.SkipThroughHeader {
		firstRow = header.RowIndex + 1
	}

	start := time.Now()
	for _, row := range sheet.Rows {
		if row.Index < firstRow {
			continue
		}

		var value string
		if cell, ok := row.Cell(col); ok {
			value = FormatCell(cell.Value, opts.Format)
		}
		if !strings.Contains(normalize(value, opts), needle) {
			continue
		}

		fields := make([]models.FieldValue, 0, len(row.Cells))
		for _, cell := range row.Cells {
			fields = append(fields, models.FieldValue{
				Label: header.Label(cell.Col),
				Value: FormatCell(cell.Value, opts.Format),
			})
		}

		return &models.SearchResult{
			Workbook:        sheet.Workbook,
			SourceName:      sheet.Name,
			MatchedRowIndex: row.Index + 1,
			Elapsed:         time.Since(start),
			Fields:          fields,
		}, nil
	}

	return nil, ErrNoMatch
}

func normalize(s string, opts MatchOptions) string {
	if opts.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if opts.IgnoreCase {
		s = fold(s)
	}
	return s
}
