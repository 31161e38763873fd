package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/store"
)

// Driver implements store.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the mapping of runs
	mu sync.RWMutex

	// runs is the in memory map of runs keyed by run id
	runs map[string]*ontology.Run
}

// NewDriver creates a new in-memory store.
func NewDriver() *Driver {
	return &Driver{
		runs: make(map[string]*ontology.Run),
	}
}

// Put stores a run, replacing any existing run with the same id. Returns
// true if the run was newly inserted.
func (s *Driver) Put(_ context.Context, run *ontology.Run) (bool, error) {
	if run == nil {
		return false, errors.New("cannot store nil run")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.runs[run.ID]
	s.runs[run.ID] = run
	return !exists, nil
}

// Get retrieves a run by its id.
func (s *Driver) Get(_ context.Context, id string) (*ontology.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, store.ErrNotFound{ID: id}
	}

	return run, nil
}

// Has checks if a run exists by its id.
func (s *Driver) Has(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.runs[id]
	return ok, nil
}

// List returns all runs ordered by start time, then id for equal times.
func (s *Driver) List(_ context.Context) ([]*ontology.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*ontology.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartTime.Equal(runs[j].StartTime) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartTime.Before(runs[j].StartTime)
	})

	return runs, nil
}

// Delete removes a run by its id.
func (s *Driver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return store.ErrNotFound{ID: id}
	}

	delete(s.runs, id)
	return nil
}

// Count returns the number of runs in the in-memory store.
func (s *Driver) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Close is a no-op for the in-memory store.
func (s *Driver) Close() error {
	return nil
}
