package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/pkg/metrics"
)

// MemoryStore is a bounded, mutex-guarded Store.
//
// Runs live in insertion order; eviction drops the oldest.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	byID     map[string]Run
	metrics  *metrics.Manager
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: defaultCapacity,
		byID:     make(map[string]Run),
		metrics:  metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put records run, ranking its results. Re-putting an id replaces the run
// without changing its position.
func (s *MemoryStore) Put(_ context.Context, run Run) (Run, error) {
	if run.ID == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrInvalidRun)
	}
	run.Results = append([]model.PitcherResult(nil), run.Results...)
	run.Ranked = Rank(run.Results)

	s.mu.Lock()
	if _, exists := s.byID[run.ID]; !exists {
		s.order = append(s.order, run.ID)
		for len(s.order) > s.capacity {
			delete(s.byID, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.byID[run.ID] = run
	n := len(s.order)
	s.mu.Unlock()

	s.metrics.UpdateRunsStored(n)
	return run, nil
}

// Get returns the run with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.byID[id]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, nil
}

// Latest returns the most recently stored run.
func (s *MemoryStore) Latest(_ context.Context) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return Run{}, ErrNotFound
	}
	return s.byID[s.order[len(s.order)-1]], nil
}

// List returns run headers, newest first.
func (s *MemoryStore) List(_ context.Context) []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		run := s.byID[s.order[i]]
		run.Results = nil
		run.Ranked = nil
		out = append(out, run)
	}
	return out
}

// Count returns the number of runs retained.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
