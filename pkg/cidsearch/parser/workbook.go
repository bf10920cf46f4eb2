package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

// Workbook is an opened spreadsheet file.
type Workbook interface {
	// Name is the file name without its directory.
	Name() string
	// SheetNames lists sheets in workbook order.
	SheetNames() []string
	// Sheet decodes the named sheet.
	Sheet(name string) (*models.Sheet, error)
	// Close releases the underlying file.
	Close() error
}

// Opener opens workbooks by path.
type Opener interface {
	Open(ctx context.Context, path string) (Workbook, error)
}

// FileOpener opens workbooks from the local filesystem, picking the decoder
// from the file extension.
type FileOpener struct{}

// Open implements Opener.
func (FileOpener) Open(ctx context.Context, path string) (Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenFile(path)
}

// OpenFile opens an .xlsx or .xls workbook. Decode failures wrap
// ErrFileOpenFailure.
func OpenFile(path string) (Workbook, error) {
	switch {
	case strings.HasSuffix(path, ".xlsx"):
		return openXLSX(path)
	case strings.HasSuffix(path, ".xls"):
		return openXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrFileOpenFailure, filepath.Base(path), filepath.Ext(path))
	}
}
