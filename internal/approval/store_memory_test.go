package approval

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

type ProjectStoreSuite struct {
	suite.Suite
	store *InMemoryProjectStore
}

func TestProjectStoreSuite(t *testing.T) {
	suite.Run(t, new(ProjectStoreSuite))
}

func (s *ProjectStoreSuite) SetupTest() {
	s.store = NewInMemoryProjectStore()
}

func (s *ProjectStoreSuite) TestGetStageNotFound() {
	_, _, err := s.store.GetStage(context.Background(), id.ProjectID(uuid.New()))
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *ProjectStoreSuite) TestCreateAndAdvance() {
	projectID := id.ProjectID(uuid.New())

	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), projectID, 0, stage.InternalReview))
	st, version, err := s.store.GetStage(context.Background(), projectID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), stage.InternalReview, st)
	assert.Equal(s.T(), uint64(1), version)

	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), projectID, 1, stage.InternalCompliance))
	st, version, err = s.store.GetStage(context.Background(), projectID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), stage.InternalCompliance, st)
	assert.Equal(s.T(), uint64(2), version)
}

func (s *ProjectStoreSuite) TestCreateConflict() {
	projectID := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), projectID, 0, stage.InternalReview))

	err := s.store.CompareAndSetStage(context.Background(), projectID, 0, stage.InternalReview)
	assert.ErrorIs(s.T(), err, sentinel.ErrVersionConflict)
}

func (s *ProjectStoreSuite) TestStaleVersionConflict() {
	projectID := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), projectID, 0, stage.InternalReview))
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), projectID, 1, stage.InternalCompliance))

	// A caller still holding version 1 must lose.
	err := s.store.CompareAndSetStage(context.Background(), projectID, 1, stage.ExternalReview)
	assert.ErrorIs(s.T(), err, sentinel.ErrVersionConflict)

	st, _, err := s.store.GetStage(context.Background(), projectID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), stage.InternalCompliance, st)
}

func (s *ProjectStoreSuite) TestListByStage() {
	timestamps := []time.Time{
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	i := 0
	s.store.now = func() time.Time {
		t := timestamps[i%len(timestamps)]
		i++
		return t
	}

	first := id.ProjectID(uuid.New())
	second := id.ProjectID(uuid.New())
	other := id.ProjectID(uuid.New())
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), first, 0, stage.InternalReview))
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), second, 0, stage.InternalReview))
	require.NoError(s.T(), s.store.CompareAndSetStage(context.Background(), other, 0, stage.ExternalReview))

	roster, err := s.store.ListByStage(context.Background(), stage.InternalReview)
	require.NoError(s.T(), err)
	require.Len(s.T(), roster, 2)
	// Oldest update first.
	assert.Equal(s.T(), second, roster[0].ProjectID)
	assert.Equal(s.T(), first, roster[1].ProjectID)

	roster, err = s.store.ListByStage(context.Background(), stage.FinalApproval)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), roster)
}
