package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/xuri/excelize/v2"
)

// xlsxWorkbook decodes Office Open XML workbooks with excelize. It is not
// safe for concurrent use.
type xlsxWorkbook struct {
	f        *excelize.File
	name     string
	date1904 bool
	// dateStyles caches the date check per style index.
	dateStyles map[int]bool
}

func openXLSX(path string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileOpenFailure, filepath.Base(path), err)
	}
	return newXLSXWorkbook(f, filepath.Base(path)), nil
}

// OpenReader decodes an .xlsx workbook from r. name is used as the workbook
// name in results.
func OpenReader(r io.Reader, name string) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileOpenFailure, name, err)
	}
	return newXLSXWorkbook(f, name), nil
}

func newXLSXWorkbook(f *excelize.File, name string) *xlsxWorkbook {
	wb := &xlsxWorkbook{
		f:          f,
		name:       name,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

func (w *xlsxWorkbook) Name() string { return w.name }

func (w *xlsxWorkbook) SheetNames() []string { return w.f.GetSheetList() }

func (w *xlsxWorkbook) Close() error { return w.f.Close() }

// Sheet decodes every non-empty cell of the sheet into a typed value.
func (w *xlsxWorkbook) Sheet(name string) (*models.Sheet, error) {
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{Workbook: w.name, Name: name}
	for rowIdx, row := range rows {
		var cells []models.Cell
		for colIdx, raw := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if raw == "" {
				// Formulas saved without a cached result still carry their source.
				formula, err := w.f.GetCellFormula(name, cellName)
				if err != nil || formula == "" {
					continue
				}
				cells = append(cells, models.Cell{Col: colIdx, Value: models.Formula(formula)})
				continue
			}
			cells = append(cells, models.Cell{
				Col:   colIdx,
				Value: w.cellValue(name, cellName, raw),
			})
		}
		if len(cells) > 0 {
			sheet.Rows = append(sheet.Rows, models.Row{Index: rowIdx, Cells: cells})
		}
	}

	return sheet, nil
}

// cellValue classifies a raw cell string using the cell's type, formula and
// number format.
func (w *xlsxWorkbook) cellValue(sheet, cell, raw string) models.CellValue {
	if formula, err := w.f.GetCellFormula(sheet, cell); err == nil && formula != "" {
		return models.Formula(formula)
	}

	cellType, err := w.f.GetCellType(sheet, cell)
	if err != nil {
		return models.Raw(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.Text(raw)
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return models.Boolean(b)
		}
		return models.Raw(raw)
	case excelize.CellTypeError:
		return models.Raw(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// t="d" cells carry an ISO 8601 string.
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				return models.Date(t)
			}
			return models.Text(raw)
		}
		if cellType == excelize.CellTypeDate || w.isDateCell(sheet, cell) {
			if t, err := excelize.ExcelDateToTime(n, w.date1904); err == nil {
				return models.Date(t)
			}
		}
		return models.Numeric(n)
	default:
		return models.Raw(raw)
	}
}

func (w *xlsxWorkbook) isDateCell(sheet, cell string) bool {
	styleID, err := w.f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := w.f.GetStyle(styleID); err == nil && style != nil {
		code := ""
		if style.CustomNumFmt != nil {
			code = *style.CustomNumFmt
		}
		isDate = IsDateFormat(style.NumFmt, code)
	}
	w.dateStyles[styleID] = isDate
	return isDate
}
