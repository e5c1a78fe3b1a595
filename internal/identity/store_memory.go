package identity

import (
	"context"
	"sync"

	id "grantflow/pkg/domain"
)

// InMemoryStore keeps role grants in memory for tests and dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	roles map[id.UserID]id.RoleSet
}

// NewInMemoryStore constructs an empty in-memory role store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{roles: make(map[id.UserID]id.RoleSet)}
}

// Grant records the user with the given roles. Granting no roles still
// registers the user, which makes them a valid remark assignee.
func (s *InMemoryStore) Grant(userID id.UserID, roles ...id.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.roles[userID]
	if !ok {
		set = id.RoleSet{}
		s.roles[userID] = set
	}
	for _, r := range roles {
		set[r] = struct{}{}
	}
}

func (s *InMemoryStore) RolesOf(_ context.Context, userID id.UserID) (id.RoleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.roles[userID]
	if !ok {
		return id.RoleSet{}, nil
	}
	out := id.RoleSet{}
	for r := range set {
		out[r] = struct{}{}
	}
	return out, nil
}

func (s *InMemoryStore) Exists(_ context.Context, userID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[userID]
	return ok, nil
}
