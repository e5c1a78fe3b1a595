package checklist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) TestGetNotFound() {
	_, _, err := s.store.Get(context.Background(), id.ProjectID(uuid.New()))
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestCreateAndGet() {
	projectID := id.ProjectID(uuid.New())
	c := NewChecklist(projectID)
	c.Slots[0] = Slot{URL: "https://drive.google.com/a", AddedBy: id.UserID(uuid.New())}

	require.NoError(s.T(), s.store.CompareAndSet(context.Background(), projectID, 0, c))

	got, version, err := s.store.Get(context.Background(), projectID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(1), version)
	assert.Equal(s.T(), c, got)
}

func (s *InMemoryStoreSuite) TestVersionConflictOnCreate() {
	projectID := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSet(context.Background(), projectID, 0, NewChecklist(projectID)))

	err := s.store.CompareAndSet(context.Background(), projectID, 0, NewChecklist(projectID))
	assert.ErrorIs(s.T(), err, sentinel.ErrVersionConflict)
}

func (s *InMemoryStoreSuite) TestVersionConflictOnStaleUpdate() {
	projectID := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSet(context.Background(), projectID, 0, NewChecklist(projectID)))

	fresh, version, err := s.store.Get(context.Background(), projectID)
	require.NoError(s.T(), err)
	fresh.Status = StatusRaised
	require.NoError(s.T(), s.store.CompareAndSet(context.Background(), projectID, version, fresh))

	// Replay with the old version must conflict.
	err = s.store.CompareAndSet(context.Background(), projectID, version, fresh)
	assert.ErrorIs(s.T(), err, sentinel.ErrVersionConflict)
}

func (s *InMemoryStoreSuite) TestGetReturnsCopy() {
	projectID := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSet(context.Background(), projectID, 0, NewChecklist(projectID)))

	first, _, err := s.store.Get(context.Background(), projectID)
	require.NoError(s.T(), err)
	first.Status = StatusApproved

	second, _, err := s.store.Get(context.Background(), projectID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StatusPending, second.Status)
}
