package cidsearch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/parser"
)

var contactsHeader = []string{"الاسم", "رقم الهاتف", "العنوان", "ملاحظات"}

// fakeSheet builds an in-memory sheet; empty strings leave the cell out.
func fakeSheet(workbook, name string, rows ...[]string) *models.Sheet {
	sheet := &models.Sheet{Workbook: workbook, Name: name}
	for i, values := range rows {
		row := models.Row{Index: i}
		for col, v := range values {
			if v != "" {
				row.Cells = append(row.Cells, models.Cell{Col: col, Value: models.Text(v)})
			}
		}
		if len(row.Cells) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

type fakeWorkbook struct {
	name   string
	sheets []*models.Sheet
	// broken names sheets whose decoding fails.
	broken    map[string]bool
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeWorkbook(name string, sheets ...*models.Sheet) *fakeWorkbook {
	return &fakeWorkbook{name: name, sheets: sheets, closed: make(chan struct{})}
}

func (w *fakeWorkbook) Name() string { return w.name }

func (w *fakeWorkbook) SheetNames() []string {
	names := make([]string, 0, len(w.sheets))
	for _, s := range w.sheets {
		names = append(names, s.Name)
	}
	return names
}

func (w *fakeWorkbook) Sheet(name string) (*models.Sheet, error) {
	if w.broken[name] {
		return nil, errors.New("bad sheet record")
	}
	for _, s := range w.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errors.New("sheet not found")
}

func (w *fakeWorkbook) Close() error {
	w.closeOnce.Do(func() { close(w.closed) })
	return nil
}

// fakeOpener serves workbooks by base name. Entries in errs fail to open
// and entries in panics panic. Entries in hold block Open until their
// channel is closed or ctx is done.
type fakeOpener struct {
	books  map[string]*fakeWorkbook
	errs   map[string]error
	panics map[string]bool
	hold   map[string]chan struct{}
	// gate, when set, blocks the first Open call until it is closed and
	// ignores cancellation. That call returns gateBook when set.
	gate     chan struct{}
	gateBook *fakeWorkbook
	entered  chan struct{}
	calls    atomic.Int32
}

func (o *fakeOpener) Open(ctx context.Context, path string) (parser.Workbook, error) {
	if o.calls.Add(1) == 1 && o.gate != nil {
		close(o.entered)
		<-o.gate
		if o.gateBook != nil {
			return o.gateBook, nil
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if release, ok := o.hold[name]; ok {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if o.panics[name] {
		panic("decoder crashed")
	}
	if err, ok := o.errs[name]; ok {
		return nil, err
	}
	wb, ok := o.books[name]
	if !ok {
		return nil, parser.ErrFileOpenFailure
	}
	return wb, nil
}

// touchWorkbooks creates empty files so directory discovery finds them.
func touchWorkbooks(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
