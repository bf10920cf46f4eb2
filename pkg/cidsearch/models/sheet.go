package models

// Row is a physically present row of a sheet.
type Row struct {
	// Index is the row index (0-based).
	Index int
	// Cells holds the row's non-empty cells ordered by column.
	Cells []Cell
}

// Cell returns the cell at column col.
func (r Row) Cell(col int) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Col == col {
			return c, true
		}
		if c.Col > col {
			break
		}
	}
	return Cell{}, false
}

// NonEmpty counts the cells that hold a displayable value.
func (r Row) NonEmpty() int {
	n := 0
	for _, c := range r.Cells {
		if !c.Value.IsEmpty() {
			n++
		}
	}
	return n
}

// Sheet is a decoded worksheet.
type Sheet struct {
	// Workbook is the file name (no path) the sheet was read from.
	Workbook string
	// Name is the sheet name.
	Name string
	// Rows contains physically present rows ordered by index.
	Rows []Row
}
