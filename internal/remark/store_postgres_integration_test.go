//go:build integration

package remark_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
	"grantflow/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *remark.PostgresStore
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
	s.store = remark.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "remarks"))
}

func (s *PostgresStoreSuite) newRemark(projectID id.ProjectID, message string, at time.Time) *remark.Remark {
	return &remark.Remark{
		ID:              id.NewRemarkID(),
		ProjectID:       projectID,
		Message:         message,
		AssignedTo:      id.UserID(uuid.New()),
		CreatedBy:       id.UserID(uuid.New()),
		Status:          remark.StatusTodo,
		StageAtCreation: stage.InternalReview,
		CreatedAt:       at,
	}
}

func (s *PostgresStoreSuite) TestAppendAllAndList() {
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	first := s.newRemark(projectID, "first", base)
	second := s.newRemark(projectID, "second", base.Add(time.Minute))
	s.Require().NoError(s.store.AppendAll(ctx, []*remark.Remark{second, first}))

	remarks, err := s.store.ListByProject(ctx, projectID)
	s.Require().NoError(err)
	s.Require().Len(remarks, 2)
	// Oldest first.
	s.Equal("first", remarks[0].Message)
	s.Equal("second", remarks[1].Message)
}

func (s *PostgresStoreSuite) TestAppendAllIsAtomic() {
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	good := s.newRemark(projectID, "good", base)
	dup := s.newRemark(projectID, "dup", base)
	dup.ID = good.ID

	err := s.store.AppendAll(ctx, []*remark.Remark{good, dup})
	s.Require().Error(err)

	remarks, err := s.store.ListByProject(ctx, projectID)
	s.Require().NoError(err)
	s.Empty(remarks)
}

func (s *PostgresStoreSuite) TestSetStatus() {
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())
	rm := s.newRemark(projectID, "toggle me", time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.AppendAll(ctx, []*remark.Remark{rm}))

	s.Require().NoError(s.store.SetStatus(ctx, rm.ID, remark.StatusDone))
	got, err := s.store.Get(ctx, rm.ID)
	s.Require().NoError(err)
	s.Equal(remark.StatusDone, got.Status)

	err = s.store.SetStatus(ctx, id.NewRemarkID(), remark.StatusDone)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
