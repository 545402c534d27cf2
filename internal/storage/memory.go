package storage

import (
	"context"
	"errors"
	"sync"

	"synthchart/internal/model"
	"synthchart/internal/series"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.Run)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.Run{}, false, nil
	}
	return cloneRun(run), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, cloneRun(run))
	}
	sortNewestFirst(runs)
	return applyLimit(runs, limit), nil
}

func (s *MemoryStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	return nil
}

func cloneRun(run model.Run) model.Run {
	run.Points = append([]series.Point(nil), run.Points...)
	return run
}
