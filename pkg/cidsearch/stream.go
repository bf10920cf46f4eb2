package cidsearch

import (
	"context"
	"sync"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/google/uuid"
)

// ResultStream collects the results of one search. It is append-only:
// published results are never changed or removed. A stream is finished when
// every task of its search completed or a newer search superseded it; after
// that, publishing is a no-op.
type ResultStream struct {
	id    string
	epoch uint64
	query models.SearchQuery

	mu         sync.Mutex
	results    []models.SearchResult
	failures   []*SheetError
	notify     chan struct{} // closed and replaced on every change
	done       chan struct{}
	finished   bool
	superseded bool
}

func newResultStream(epoch uint64, query models.SearchQuery) *ResultStream {
	return &ResultStream{
		id:     uuid.NewString(),
		epoch:  epoch,
		query:  query,
		notify: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// ID identifies the search in logs.
func (s *ResultStream) ID() string { return s.id }

// Epoch is the searcher generation that owns the stream.
func (s *ResultStream) Epoch() uint64 { return s.epoch }

// Query returns the query being searched.
func (s *ResultStream) Query() models.SearchQuery { return s.query }

// publish appends r and wakes subscribers. It reports false when the stream
// is already finished and r was dropped.
func (s *ResultStream) publish(r models.SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return false
	}
	s.results = append(s.results, r)
	s.broadcast()
	return true
}

func (s *ResultStream) fail(err *SheetError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return
	}
	s.failures = append(s.failures, err)
}

func (s *ResultStream) finish(superseded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return
	}
	s.finished = true
	s.superseded = superseded
	close(s.notify)
	close(s.done)
}

// broadcast must be called with mu held on an unfinished stream.
func (s *ResultStream) broadcast() {
	close(s.notify)
	s.notify = make(chan struct{})
}

// Snapshot returns the results published so far in publish order.
func (s *ResultStream) Snapshot() []models.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of published results.
func (s *ResultStream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Failures returns the sheets and workbooks that were skipped with an error.
func (s *ResultStream) Failures() []*SheetError {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*SheetError, len(s.failures))
	copy(out, s.failures)
	return out
}

// Done is closed when the stream is finished.
func (s *ResultStream) Done() <-chan struct{} { return s.done }

// Wait blocks until the stream is finished or ctx ends.
func (s *ResultStream) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Superseded reports whether a newer search finished this stream early.
func (s *ResultStream) Superseded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.superseded
}

// Subscribe delivers every result of the stream, starting with those
// already published, then each new one as it arrives. The channel is closed
// once the stream is finished and drained, or when ctx ends.
func (s *ResultStream) Subscribe(ctx context.Context) <-chan models.SearchResult {
	ch := make(chan models.SearchResult)

	go func() {
		defer close(ch)

		next := 0
		for {
			s.mu.Lock()
			pending := append([]models.SearchResult(nil), s.results[next:]...)
			next = len(s.results)
			finished := s.finished
			notify := s.notify
			s.mu.Unlock()

			for _, r := range pending {
				select {
				case ch <- r:
				case <-ctx.Done():
					return
				}
			}
			if finished {
				return
			}

			select {
			case <-notify:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
