package parser

import "github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"

// textSheet builds a sheet of text cells; empty strings leave the cell out
// and nil rows are not physically present.
func textSheet(name string, rows ...[]string) *models.Sheet {
	sheet := &models.Sheet{Workbook: "test.xlsx", Name: name}
	for i, values := range rows {
		if values == nil {
			continue
		}
		row := models.Row{Index: i}
		for col, v := range values {
			if v == "" {
				continue
			}
			row.Cells = append(row.Cells, models.Cell{Col: col, Value: models.Text(v)})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
