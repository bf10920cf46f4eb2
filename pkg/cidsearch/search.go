package cidsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/parser"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Searcher runs one search at a time. Starting a search supersedes the
// previous one: its tasks are cancelled and its stream is finished, so late
// results from the old search are dropped instead of leaking into the new
// one.
type Searcher struct {
	opts   Options
	log    logrus.FieldLogger
	opener parser.Opener

	mu      sync.Mutex
	epoch   uint64
	current *ResultStream
	cancel  context.CancelFunc
}

// New creates a Searcher. A nil logger discards logs and a nil opener reads
// workbooks from the local filesystem.
func New(opts Options, logger logrus.FieldLogger, opener parser.Opener) (*Searcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if opener == nil {
		opener = parser.FileOpener{}
	}
	return &Searcher{
		opts:   opts,
		log:    logger,
		opener: opener,
	}, nil
}

// Options returns the validated options.
func (s *Searcher) Options() Options {
	return s.opts
}

// validateQuery validates search query parameters
func validateQuery(query models.SearchQuery) error {
	if strings.TrimSpace(query.Text) == "" {
		return &ValidationError{Field: "text", Message: "search query cannot be empty"}
	}
	if !query.Field.Valid() {
		return &ValidationError{Field: "field", Message: fmt.Sprintf("unknown search field %s", query.Field)}
	}
	return nil
}

// Search starts a search and returns its result stream immediately. The
// previous search, if any, is superseded. Results are published as each
// sheet finishes; the stream is finished when all sheets are done.
func (s *Searcher) Search(ctx context.Context, query models.SearchQuery) (*ResultStream, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.supersedeLocked()
	s.epoch++
	stream := newResultStream(s.epoch, query)
	runCtx, cancel := context.WithCancel(ctx)
	s.current = stream
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx, cancel, stream)
	return stream, nil
}

// FindFirst runs a search and returns the first result published, or nil
// when the search completes without one.
func (s *Searcher) FindFirst(ctx context.Context, query models.SearchQuery) (*models.SearchResult, error) {
	stream, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, ok := <-stream.Subscribe(subCtx)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &r, nil
}

// Results returns the results of the current search so far.
func (s *Searcher) Results() []models.SearchResult {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil
	}
	return current.Snapshot()
}

// Current returns the stream of the latest search, or nil.
func (s *Searcher) Current() *ResultStream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels the current search.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

func (s *Searcher) supersedeLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.current != nil {
		s.current.finish(true)
	}
}

func (s *Searcher) run(ctx context.Context, cancel context.CancelFunc, stream *ResultStream) {
	defer cancel()

	log := s.log.WithFields(logrus.Fields{
		"search_id": stream.ID(),
		"epoch":     stream.Epoch(),
		"field":     stream.Query().Field.String(),
		"mode":      string(s.opts.Mode),
	})
	log.Info("Search started")
	start := time.Now()

	switch s.opts.Mode {
	case ModeSingle:
		s.runSingle(ctx, stream, log)
	default:
		s.runFanOut(ctx, stream, log)
	}

	stream.finish(false)
	log.WithFields(logrus.Fields{
		"results":    stream.Len(),
		"skipped":    len(stream.Failures()),
		"superseded": stream.Superseded(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Info("Search finished")
}

// runSingle scans the first sheet of the configured workbook.
func (s *Searcher) runSingle(ctx context.Context, stream *ResultStream, log logrus.FieldLogger) {
	path := s.opts.WorkbookPath
	s.guard(stream, log, filepath.Base(path), "", func() error {
		wb, err := s.opener.Open(ctx, path)
		if err != nil {
			return err
		}
		defer closeWorkbook(wb, log)

		names := wb.SheetNames()
		if len(names) == 0 {
			return fmt.Errorf("%w: workbook has no sheets", ErrHeaderNotFound)
		}
		sheet, err := wb.Sheet(names[0])
		if err != nil {
			return NewSheetError(wb.Name(), names[0], fmt.Errorf("%w: %v", ErrFileOpenFailure, err))
		}
		s.scan(stream, log, sheet)
		return nil
	})
}

// runFanOut opens every discovered workbook and scans all of their sheets
// concurrently. Decoding is bounded by MaxOpenFiles, scanning by MaxWorkers.
func (s *Searcher) runFanOut(ctx context.Context, stream *ResultStream, log logrus.FieldLogger) {
	paths := parser.DiscoverWorkbooks(s.opts.Directory)
	log.WithFields(logrus.Fields{
		"directory": s.opts.Directory,
		"workbooks": len(paths),
	}).Debug("Discovered workbooks")

	var files, scans errgroup.Group
	files.SetLimit(s.opts.MaxOpenFiles)
	scans.SetLimit(s.opts.MaxWorkers)

	for _, path := range paths {
		files.Go(func() error {
			s.guard(stream, log, filepath.Base(path), "", func() error {
				return s.decodeWorkbook(ctx, stream, log, path, &scans)
			})
			return nil
		})
	}

	_ = files.Wait()
	_ = scans.Wait()
}

// decodeWorkbook decodes each sheet of one workbook and hands it to the scan
// group. The workbook is closed once all of its sheets are decoded; scans
// only read the decoded copy.
func (s *Searcher) decodeWorkbook(ctx context.Context, stream *ResultStream, log logrus.FieldLogger, path string, scans *errgroup.Group) error {
	wb, err := s.opener.Open(ctx, path)
	if err != nil {
		return err
	}
	defer closeWorkbook(wb, log)

	for _, name := range wb.SheetNames() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		sheet, err := wb.Sheet(name)
		if err != nil {
			s.record(stream, log, NewSheetError(wb.Name(), name, fmt.Errorf("%w: %v", ErrFileOpenFailure, err)))
			continue
		}

		scans.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			s.guard(stream, log, sheet.Workbook, sheet.Name, func() error {
				s.scan(stream, log, sheet)
				return nil
			})
			return nil
		})
	}
	return nil
}

// scan resolves the header of one sheet, matches its rows and publishes the
// result. Every outcome other than a match is recorded on the stream.
func (s *Searcher) scan(stream *ResultStream, log logrus.FieldLogger, sheet *models.Sheet) {
	header, err := parser.ResolveHeader(sheet, s.opts.Labels, s.opts.Match.Format)
	if err != nil {
		s.record(stream, log, NewSheetError(sheet.Workbook, sheet.Name, err))
		return
	}

	result, err := parser.MatchRow(sheet, header, stream.Query(), s.opts.Match)
	if err != nil {
		s.record(stream, log, NewSheetError(sheet.Workbook, sheet.Name, err))
		return
	}

	entry := log.WithFields(logrus.Fields{
		"workbook":   result.Workbook,
		"sheet":      result.SourceName,
		"row":        result.MatchedRowIndex,
		"elapsed_ms": result.ElapsedMillis(),
	})
	if !stream.publish(*result) {
		entry.Debug("Dropped result of superseded search")
		return
	}
	entry.Info("Match found")
}

// guard runs fn as one isolated unit of work: errors and panics are recorded
// and never reach sibling tasks.
func (s *Searcher) guard(stream *ResultStream, log logrus.FieldLogger, workbook, sheet string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.record(stream, log, NewSheetError(workbook, sheet, fmt.Errorf("%w: %v", ErrUnexpected, r)))
		}
	}()

	if err := fn(); err != nil {
		var sheetErr *SheetError
		if !errors.As(err, &sheetErr) {
			sheetErr = NewSheetError(workbook, sheet, err)
		}
		s.record(stream, log, sheetErr)
	}
}

// record logs a per-unit outcome and keeps it on the stream. A plain
// no-match and cancellation are logged only.
func (s *Searcher) record(stream *ResultStream, log logrus.FieldLogger, err *SheetError) {
	entry := log.WithFields(logrus.Fields{
		"workbook": err.Workbook,
		"sheet":    err.Sheet,
		"error":    err.Err.Error(),
	})

	switch {
	case errors.Is(err, ErrNoMatch):
		entry.Debug("No matching row")
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		entry.Debug("Task cancelled")
		return
	case errors.Is(err, ErrHeaderNotFound), errors.Is(err, ErrFieldNotFound):
		entry.Info("Sheet skipped")
	case errors.Is(err, ErrFileOpenFailure):
		entry.Warn("Workbook skipped")
	default:
		entry.Error("Unexpected failure")
	}
	stream.fail(err)
}

func closeWorkbook(wb parser.Workbook, log logrus.FieldLogger) {
	if err := wb.Close(); err != nil {
		log.WithFields(logrus.Fields{
			"workbook": wb.Name(),
			"error":    err.Error(),
		}).Warn("Failed to close workbook")
	}
}
