package cache

import (
	"context"
	"sync"
	"time"
)

// Fetch produces a fresh value.
type Fetch[T any] func(ctx context.Context) (T, error)

// Snapshot holds a single cached value with an explicit {value, fetchedAt,
// ttl} triple instead of hidden process-wide state. A Get within the TTL
// returns the cached value; past the TTL, or on a forced Refresh, the fetch
// runs again and overwrites the snapshot. A failed fetch leaves the previous
// snapshot intact so callers can keep showing stale data next to the error.
type Snapshot[T any] struct {
	mu    sync.Mutex
	fetch Fetch[T]
	ttl   time.Duration
	now   func() time.Time

	value     T
	fetchedAt time.Time
	valid     bool
}

func New[T any](ttl time.Duration, fetch Fetch[T]) *Snapshot[T] {
	return &Snapshot[T]{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// SetClock replaces the time source, used by tests.
func (s *Snapshot[T]) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns the cached value, fetching first if the snapshot is missing or
// older than the TTL.
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	return s.Refresh(ctx, false)
}

// Refresh re-fetches when forced or when the snapshot is stale, and returns
// the current value either way.
func (s *Snapshot[T]) Refresh(ctx context.Context, force bool) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.valid && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.value, nil
	}

	value, err := s.fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.value = value
	s.fetchedAt = s.now()
	s.valid = true
	return value, nil
}

// Last returns the most recent good snapshot without fetching, along with
// when it was taken. ok is false before the first successful fetch.
func (s *Snapshot[T]) Last() (value T, fetchedAt time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.fetchedAt, s.valid
}
