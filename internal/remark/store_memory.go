package remark

import (
	"context"
	"fmt"
	"sort"
	"sync"

	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

// InMemoryStore keeps remarks in memory for tests and dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	remarks map[id.RemarkID]*Remark
}

// NewInMemoryStore constructs an empty in-memory remark store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{remarks: make(map[id.RemarkID]*Remark)}
}

func (s *InMemoryStore) AppendAll(_ context.Context, remarks []*Remark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range remarks {
		if _, exists := s.remarks[r.ID]; exists {
			return fmt.Errorf("remark %s already appended: %w", r.ID, sentinel.ErrInvalidState)
		}
	}
	for _, r := range remarks {
		clone := *r
		s.remarks[r.ID] = &clone
	}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, remarkID id.RemarkID) (*Remark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.remarks[remarkID]
	if !ok {
		return nil, fmt.Errorf("remark %s: %w", remarkID, sentinel.ErrNotFound)
	}
	clone := *r
	return &clone, nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, remarkID id.RemarkID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.remarks[remarkID]
	if !ok {
		return fmt.Errorf("remark %s: %w", remarkID, sentinel.ErrNotFound)
	}
	r.Status = status
	return nil
}

func (s *InMemoryStore) ListByProject(_ context.Context, projectID id.ProjectID) ([]*Remark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Remark
	for _, r := range s.remarks {
		if r.ProjectID == projectID {
			clone := *r
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
