// Package identity resolves actors to their grantflow roles. The host
// application owns user records; this package only reads the role grants it
// mirrors for the approval core.
package identity

import (
	"context"
	"errors"

	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/sentinel"
)

// Store persists role grants per user.
type Store interface {
	RolesOf(ctx context.Context, userID id.UserID) (id.RoleSet, error)
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// Service answers role and existence queries for the approval core.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RoleOf returns the roles held by the actor. An unknown actor gets an empty
// set rather than an error; authorization checks downstream reject it.
func (s *Service) RoleOf(ctx context.Context, actorID id.UserID) (id.RoleSet, error) {
	roles, err := s.store.RolesOf(ctx, actorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.RoleSet{}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "role lookup failed")
	}
	return roles, nil
}

// Exists reports whether the user is known, used to resolve remark assignees.
func (s *Service) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	ok, err := s.store.Exists(ctx, userID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}
	return ok, nil
}
