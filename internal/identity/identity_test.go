package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
)

func TestRoleOf(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store)

	officer := id.UserID(uuid.New())
	store.Grant(officer, id.RoleComplianceOfficer, id.RoleComplianceHead)

	roles, err := svc.RoleOf(context.Background(), officer)
	require.NoError(t, err)
	assert.True(t, roles.Has(id.RoleComplianceOfficer))
	assert.True(t, roles.Has(id.RoleComplianceHead))
}

func TestRoleOf_UnknownActorIsEmptyNotError(t *testing.T) {
	svc := NewService(NewInMemoryStore())

	roles, err := svc.RoleOf(context.Background(), id.UserID(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestExists(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store)

	known := id.UserID(uuid.New())
	store.Grant(known) // registered with no roles, still a valid assignee

	ok, err := svc.Exists(context.Background(), known)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), id.UserID(uuid.New()))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key", "grantflow-test")
	actorID := id.UserID(uuid.New())

	token, err := svc.GenerateAccessToken(actorID, []id.Role{id.RoleExternalReviewer}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, actorID, claims.ActorID)
	assert.Equal(t, []id.Role{id.RoleExternalReviewer}, claims.Roles)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-signing-key", "grantflow-test")

	token, err := svc.GenerateAccessToken(id.UserID(uuid.New()), nil, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestJWTRejectsForeignKey(t *testing.T) {
	issuer := NewJWTService("key-a", "grantflow-test")
	verifier := NewJWTService("key-b", "grantflow-test")

	token, err := issuer.GenerateAccessToken(id.UserID(uuid.New()), nil, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
