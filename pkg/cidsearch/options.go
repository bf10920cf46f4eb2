// Package cidsearch searches spreadsheet rows by name or phone number and
// streams matching rows to subscribers as they are found.
package cidsearch

import (
	"runtime"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/parser"
)

// Mode represents how workbooks are selected and scanned.
type Mode string

const (
	// ModeSingle scans the first sheet of one configured workbook.
	ModeSingle Mode = "single"
	// ModeFanOut scans every sheet of every workbook in a directory concurrently.
	ModeFanOut Mode = "fanout"
)

// DefaultMaxOpenFiles bounds how many workbooks are decoded at once.
const DefaultMaxOpenFiles = 4

// Options configures a Searcher.
type Options struct {
	// Mode selects single-workbook or fan-out search.
	Mode Mode
	// Directory holds the workbooks scanned in fan-out mode.
	Directory string
	// WorkbookPath is the workbook scanned in single mode.
	WorkbookPath string
	// Labels maps fields to header label variants.
	// If nil, parser.DefaultHeaderLabels is used.
	Labels parser.HeaderLabels
	// Match controls value comparison and formatting.
	Match parser.MatchOptions
	// MaxWorkers bounds concurrent sheet scans. Zero means runtime.NumCPU.
	MaxWorkers int
	// MaxOpenFiles bounds concurrently open workbooks. Zero means DefaultMaxOpenFiles.
	MaxOpenFiles int
}

// DefaultOptions returns fan-out options over dir with case-sensitive,
// untrimmed matching.
func DefaultOptions(dir string) Options {
	return Options{
		Mode:      ModeFanOut,
		Directory: dir,
	}
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	switch o.Mode {
	case "":
		o.Mode = ModeFanOut
	case ModeSingle, ModeFanOut:
	default:
		return &ValidationError{Field: "mode", Message: "must be single or fanout"}
	}

	if o.Mode == ModeSingle && o.WorkbookPath == "" {
		return &ValidationError{Field: "workbook_path", Message: "required in single mode"}
	}
	if o.Mode == ModeFanOut && o.Directory == "" {
		return &ValidationError{Field: "directory", Message: "required in fanout mode"}
	}

	if o.MaxWorkers < 0 {
		return &ValidationError{Field: "max_workers", Message: "cannot be negative"}
	}
	if o.MaxWorkers == 0 {
		o.MaxWorkers = runtime.NumCPU()
	}
	if o.MaxOpenFiles < 0 {
		return &ValidationError{Field: "max_open_files", Message: "cannot be negative"}
	}
	if o.MaxOpenFiles == 0 {
		o.MaxOpenFiles = DefaultMaxOpenFiles
	}
	if o.Labels == nil {
		o.Labels = parser.DefaultHeaderLabels()
	}
	return nil
}
