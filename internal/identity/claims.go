package identity

import (
	"context"

	id "grantflow/pkg/domain"
	"grantflow/pkg/requestcontext"
)

// TokenIdentity answers role queries from the authenticated token instead of
// a role store, for deployments that run without a user mirror. The auth
// middleware verifies the token signature and attaches its roles to the
// request context; this adapter only reads what the middleware attached.
type TokenIdentity struct{}

// RoleOf returns the token-borne roles when asked about the authenticated
// actor. Any other user gets an empty set: the token vouches for its own
// subject only.
func (TokenIdentity) RoleOf(ctx context.Context, actorID id.UserID) (id.RoleSet, error) {
	if actorID.IsZero() || actorID != requestcontext.ActorID(ctx) {
		return id.RoleSet{}, nil
	}
	roles := requestcontext.ActorRoles(ctx)
	if roles == nil {
		return id.RoleSet{}, nil
	}
	return roles, nil
}

// Exists accepts any well-formed user id. Remark assignees come from the
// host application, and without a mirror the token is the only identity
// source available.
func (TokenIdentity) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	return !userID.IsZero(), nil
}
