// Package store keeps the filters and last fetched result of a page.
// Fetches are numbered; a result is applied only when no newer fetch was started meanwhile.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/edudash/core"
)

// FetchFunc loads a result for the given filters.
type FetchFunc[F, R any] func(ctx context.Context, filters F) (R, error)

type Option[F, R any] func(*Store[F, R])

// WithDebounce delays fetches triggered by SetFilters until d passed without another change.
func WithDebounce[F, R any](d time.Duration) Option[F, R] {
	return func(s *Store[F, R]) { s.debounce = d }
}

// WithLogger logs failed fetches.
func WithLogger[F, R any](logger core.Logger) Option[F, R] {
	return func(s *Store[F, R]) { s.logger = logger }
}

// WithName names the store in log messages.
func WithName[F, R any](name string) Option[F, R] {
	return func(s *Store[F, R]) { s.name = name }
}

type Store[F, R any] struct {
	fetch    FetchFunc[F, R]
	defaults F
	debounce time.Duration
	logger   core.Logger
	name     string

	mu         sync.Mutex
	filters    F
	data       R
	err        error
	loading    bool
	generation uint64
	timer      *time.Timer
	closed     bool

	// ctx outlives the callers of SetFilters; debounced fetches run with it until Close.
	ctx    context.Context
	cancel context.CancelFunc
}

func New[F, R any](defaults F, fetch FetchFunc[F, R], opts ...Option[F, R]) *Store[F, R] {
	s := &Store[F, R]{fetch: fetch, defaults: defaults, filters: defaults, name: "store"}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a consistent view of a store.
type Snapshot[F, R any] struct {
	Filters F
	Data    R
	Err     error
	Loading bool
}

func (s *Store[F, R]) Snapshot() Snapshot[F, R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[F, R]{Filters: s.filters, Data: s.data, Err: s.err, Loading: s.loading}
}

func (s *Store[F, R]) Filters() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store[F, R]) Data() R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// SetFilters applies change to the filters then fetches, or schedules a debounced fetch.
// A change returning an error leaves the filters untouched and fetches nothing.
// ctx only bounds an immediate fetch; a debounced one runs with the store's own context.
func (s *Store[F, R]) SetFilters(ctx context.Context, change func(*F) error) error {
	s.mu.Lock()
	next := s.filters
	if err := change(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.filters = next
	if s.debounce <= 0 {
		s.mu.Unlock()
		return s.Fetch(ctx)
	}
	s.schedule()
	s.mu.Unlock()
	return nil
}

// Reset restores the default filters and fetches right away.
func (s *Store[F, R]) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.filters = s.defaults
	s.stopTimer()
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// Fetch loads data for the current filters. A failure is logged and recorded, previous data is kept.
// The returned error is the fetch error, or nil when the result was discarded as stale.
func (s *Store[F, R]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	filters := s.filters
	s.loading = true
	s.mu.Unlock()

	data, err := s.fetch(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil // stale
	}
	s.loading = false
	if err != nil {
		s.err = err
		if s.logger != nil {
			s.logger.Error(s.name+": fetch failed", err)
		}
		return err
	}
	s.data = data
	s.err = nil
	return nil
}

// Flush runs a pending debounced fetch now.
func (s *Store[F, R]) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return nil
	}
	s.stopTimer()
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// Pending reports whether a debounced fetch is scheduled.
func (s *Store[F, R]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Close cancels any pending or running debounced fetch. Later changes no longer schedule fetches.
func (s *Store[F, R]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
	s.closed = true
	s.cancel()
}

// schedule must be called with s.mu held.
func (s *Store[F, R]) schedule() {
	if s.closed {
		return
	}
	s.stopTimer()
	var timer *time.Timer
	timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if s.timer != timer {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		_ = s.Fetch(s.ctx)
	})
	s.timer = timer
}

// stopTimer must be called with s.mu held.
func (s *Store[F, R]) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
