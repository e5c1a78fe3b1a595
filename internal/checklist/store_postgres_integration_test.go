//go:build integration

package checklist_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"grantflow/internal/checklist"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
	"grantflow/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *checklist.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = checklist.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "checklists"))
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())
	contributor := id.UserID(uuid.New())
	addedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	c := checklist.NewChecklist(projectID)
	c.Slots[0] = checklist.Slot{URL: "https://drive.google.com/budget", AddedBy: contributor, AddedAt: addedAt}
	c.Slots[3] = checklist.Slot{URL: "https://docs.google.com/minutes", AddedBy: contributor, AddedAt: addedAt}

	s.Require().NoError(s.store.CompareAndSet(ctx, projectID, 0, c))

	got, version, err := s.store.Get(ctx, projectID)
	s.Require().NoError(err)
	s.Equal(uint64(1), version)
	s.Equal(checklist.StatusPending, got.Status)
	s.Equal(2, got.FilledCount())
	s.Equal("https://drive.google.com/budget", got.Slots[0].URL)
	s.Equal(contributor, got.Slots[0].AddedBy)
	s.True(got.Slots[0].AddedAt.Equal(addedAt))
	s.False(got.Slots[1].IsFilled())
}

func (s *PostgresStoreSuite) TestVersionConflicts() {
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())
	c := checklist.NewChecklist(projectID)

	s.Require().NoError(s.store.CompareAndSet(ctx, projectID, 0, c))

	// Re-creating and stale updates both lose.
	s.Require().ErrorIs(s.store.CompareAndSet(ctx, projectID, 0, c), sentinel.ErrVersionConflict)
	s.Require().ErrorIs(s.store.CompareAndSet(ctx, projectID, 7, c), sentinel.ErrVersionConflict)

	c.Status = checklist.StatusRaised
	s.Require().NoError(s.store.CompareAndSet(ctx, projectID, 1, c))
	got, version, err := s.store.Get(ctx, projectID)
	s.Require().NoError(err)
	s.Equal(checklist.StatusRaised, got.Status)
	s.Equal(uint64(2), version)
}
