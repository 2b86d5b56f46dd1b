package repository

import (
	"context"
	"sync"
)

const defaultCapacity = 100

// HistoryStore implements Store as a mutex-guarded ring of recent runs.
type HistoryStore struct {
	mu       sync.RWMutex
	runs     []Run // oldest first
	capacity int
}

// NewHistoryStore creates a history store with configuration options.
func NewHistoryStore(_ context.Context, opts ...Option) *HistoryStore {
	s := &HistoryStore{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.runs = make([]Run, 0, s.capacity)
	return s
}

// Record appends run, dropping the oldest entry once at capacity.
func (s *HistoryStore) Record(_ context.Context, run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.runs) >= s.capacity {
		copy(s.runs, s.runs[1:])
		s.runs = s.runs[:len(s.runs)-1]
	}
	s.runs = append(s.runs, run)
}

// Recent returns up to n runs, newest first.
func (s *HistoryStore) Recent(_ context.Context, n int) ([]Run, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.runs) {
		n = len(s.runs)
	}
	out := make([]Run, n)
	for i := 0; i < n; i++ {
		out[i] = s.runs[len(s.runs)-1-i]
	}
	return out, nil
}

// Count returns the number of held runs.
func (s *HistoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
