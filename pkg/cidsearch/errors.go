package cidsearch

import (
	"errors"
	"fmt"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/parser"
)

// Per-sheet outcomes. None of them aborts a search.
var (
	ErrHeaderNotFound  = parser.ErrHeaderNotFound
	ErrFieldNotFound   = parser.ErrFieldNotFound
	ErrFileOpenFailure = parser.ErrFileOpenFailure
	ErrNoMatch         = parser.ErrNoMatch
)

// ErrUnexpected wraps a panic recovered from a sheet or file task.
var ErrUnexpected = errors.New("unexpected failure")

// SheetError records why a workbook or sheet produced no result.
type SheetError struct {
	Workbook string
	Sheet    string // empty when the whole workbook failed
	Err      error
}

func (e *SheetError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("workbook %q: %v", e.Workbook, e.Err)
	}
	return fmt.Sprintf("workbook %q sheet %q: %v", e.Workbook, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(workbook, sheet string, err error) *SheetError {
	return &SheetError{
		Workbook: workbook,
		Sheet:    sheet,
		Err:      err,
	}
}

// ValidationError reports a rejected query or option.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSkip reports whether err is one of the expected per-sheet outcomes
// (missing header, missing field, undecodable file, no match).
func IsSkip(err error) bool {
	return errors.Is(err, ErrHeaderNotFound) ||
		errors.Is(err, ErrFieldNotFound) ||
		errors.Is(err, ErrFileOpenFailure) ||
		errors.Is(err, ErrNoMatch)
}
