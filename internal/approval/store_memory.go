package approval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

type projectRecord struct {
	stage     stage.Stage
	version   uint64
	updatedAt time.Time
}

// InMemoryProjectStore keeps project stage records in memory for tests and dev.
type InMemoryProjectStore struct {
	mu       sync.RWMutex
	projects map[id.ProjectID]projectRecord
	now      func() time.Time
}

// NewInMemoryProjectStore constructs an empty in-memory project store.
func NewInMemoryProjectStore() *InMemoryProjectStore {
	return &InMemoryProjectStore{
		projects: make(map[id.ProjectID]projectRecord),
		now:      time.Now,
	}
}

func (s *InMemoryProjectStore) GetStage(_ context.Context, projectID id.ProjectID) (stage.Stage, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.projects[projectID]
	if !ok {
		return "", 0, fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}
	return record.stage, record.version, nil
}

func (s *InMemoryProjectStore) CompareAndSetStage(_ context.Context, projectID id.ProjectID, expectedVersion uint64, newStage stage.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.projects[projectID]
	current := uint64(0)
	if ok {
		current = record.version
	}
	if current != expectedVersion {
		return fmt.Errorf("project %s at version %d, expected %d: %w",
			projectID, current, expectedVersion, sentinel.ErrVersionConflict)
	}
	s.projects[projectID] = projectRecord{
		stage:     newStage,
		version:   current + 1,
		updatedAt: s.now(),
	}
	return nil
}

func (s *InMemoryProjectStore) ListByStage(_ context.Context, st stage.Stage) ([]ProjectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ProjectSummary
	for projectID, record := range s.projects {
		if record.stage != st {
			continue
		}
		out = append(out, ProjectSummary{
			ProjectID: projectID,
			Stage:     record.stage,
			Version:   record.version,
			UpdatedAt: record.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ProjectID.String() < out[j].ProjectID.String()
	})
	return out, nil
}
