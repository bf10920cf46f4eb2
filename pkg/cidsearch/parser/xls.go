package parser

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// xlsWorkbook decodes legacy BIFF (.xls) workbooks with xlrd.
type xlsWorkbook struct {
	book *xlrd.Book
	name string
}

func openXLS(path string) (*xlsWorkbook, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileOpenFailure, filepath.Base(path), err)
	}
	return &xlsWorkbook{book: book, name: filepath.Base(path)}, nil
}

func (w *xlsWorkbook) Name() string { return w.name }

func (w *xlsWorkbook) SheetNames() []string { return w.book.SheetNames() }

func (w *xlsWorkbook) Close() error {
	w.book.ReleaseResources()
	return nil
}

func (w *xlsWorkbook) Sheet(name string) (*models.Sheet, error) {
	sh, err := w.book.SheetByName(name)
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{Workbook: w.name, Name: name}
	for rowx := 0; rowx < sh.NRows; rowx++ {
		var cells []models.Cell
		for colx := 0; colx < sh.NCols; colx++ {
			value := w.cellValue(sh, rowx, colx)
			if value.Kind == models.CellEmpty {
				continue
			}
			cells = append(cells, models.Cell{Col: colx, Value: value})
		}
		if len(cells) > 0 {
			sheet.Rows = append(sheet.Rows, models.Row{Index: rowx, Cells: cells})
		}
	}

	return sheet, nil
}

func (w *xlsWorkbook) cellValue(sh *xlrd.Sheet, rowx, colx int) models.CellValue {
	value := sh.RawCellValue(rowx, colx)

	switch sh.RawCellType(rowx, colx) {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return models.CellValue{}
	case xlrd.XL_CELL_TEXT:
		s, _ := value.(string)
		if s == "" {
			return models.CellValue{}
		}
		return models.Text(s)
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		n, ok := toFloat(value)
		if !ok {
			return models.Raw(fmt.Sprint(value))
		}
		if w.isDateXF(sh.RawCellXFIndex(rowx, colx)) {
			if t, err := xlrd.XldateAsDatetime(n, w.book.Datemode); err == nil {
				return models.Date(t)
			}
		}
		return models.Numeric(n)
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			return models.Boolean(v)
		case int:
			return models.Boolean(v != 0)
		}
		return models.Raw(fmt.Sprint(value))
	case xlrd.XL_CELL_ERROR:
		if code, ok := value.(byte); ok {
			if text, ok := xlrd.ErrorTextFromCode[code]; ok {
				return models.Raw(text)
			}
		}
		return models.Raw("#ERROR")
	default:
		if value == nil {
			return models.CellValue{}
		}
		return models.Raw(fmt.Sprint(value))
	}
}

func (w *xlsWorkbook) isDateXF(xfIndex int) bool {
	if xfIndex < 0 || xfIndex >= len(w.book.XFList) {
		return false
	}
	key := w.book.XFList[xfIndex].FormatKey
	if IsBuiltinDateFormat(key) {
		return true
	}
	format := w.book.FormatMap[key]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(w.book, format.FormatString)
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
