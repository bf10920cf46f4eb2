package parser

import "errors"

// ErrHeaderNotFound indicates no row has more than MinHeaderCells populated cells.
var ErrHeaderNotFound = errors.New("header row not found")

// ErrFieldNotFound indicates the header has no column for the requested field.
var ErrFieldNotFound = errors.New("search field not found in header")

// ErrNoMatch indicates the scan finished without a matching row.
var ErrNoMatch = errors.New("no matching row")

// ErrFileOpenFailure indicates a workbook could not be decoded.
var ErrFileOpenFailure = errors.New("workbook could not be opened")
