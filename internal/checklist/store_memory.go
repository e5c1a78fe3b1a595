package checklist

import (
	"context"
	"fmt"
	"sync"

	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

type versioned struct {
	checklist *Checklist
	version   uint64
}

// InMemoryStore keeps checklists in memory for tests and dev.
type InMemoryStore struct {
	mu         sync.RWMutex
	checklists map[id.ProjectID]versioned
}

// NewInMemoryStore constructs an empty in-memory checklist store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{checklists: make(map[id.ProjectID]versioned)}
}

func (s *InMemoryStore) Get(_ context.Context, projectID id.ProjectID) (*Checklist, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.checklists[projectID]
	if !ok {
		return nil, 0, fmt.Errorf("checklist for project %s: %w", projectID, sentinel.ErrNotFound)
	}
	return entry.checklist.Clone(), entry.version, nil
}

func (s *InMemoryStore) CompareAndSet(_ context.Context, projectID id.ProjectID, expectedVersion uint64, c *Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.checklists[projectID]
	current := uint64(0)
	if ok {
		current = entry.version
	}
	if current != expectedVersion {
		return fmt.Errorf("checklist for project %s at version %d, expected %d: %w",
			projectID, current, expectedVersion, sentinel.ErrVersionConflict)
	}
	s.checklists[projectID] = versioned{checklist: c.Clone(), version: current + 1}
	return nil
}
