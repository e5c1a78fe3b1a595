package approval

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantflow/internal/checklist"
	"grantflow/internal/identity"
	"grantflow/internal/notify"
	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/sentinel"
)

// fakeChecklists serves a fixed checklist status per project.
type fakeChecklists struct {
	status map[id.ProjectID]checklist.Status
}

func (f *fakeChecklists) Get(_ context.Context, projectID id.ProjectID) (*checklist.Checklist, error) {
	c := checklist.NewChecklist(projectID)
	if status, ok := f.status[projectID]; ok {
		c.Status = status
	}
	return c, nil
}

// recordingNotifier captures emitted events synchronously.
type recordingNotifier struct {
	events []notify.Event
}

func (r *recordingNotifier) Emit(_ context.Context, event notify.Event) {
	r.events = append(r.events, event)
}

type engineFixture struct {
	svc        *Service
	projects   *InMemoryProjectStore
	roles      *identity.InMemoryStore
	remarks    *remark.Service
	checklists *fakeChecklists
	notifier   *recordingNotifier

	reviewer  id.UserID
	officer   id.UserID
	external  id.UserID
	director  id.UserID
	projectID id.ProjectID
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		projects:   NewInMemoryProjectStore(),
		roles:      identity.NewInMemoryStore(),
		remarks:    remark.NewService(remark.NewInMemoryStore()),
		checklists: &fakeChecklists{status: make(map[id.ProjectID]checklist.Status)},
		notifier:   &recordingNotifier{},
		reviewer:   id.UserID(uuid.New()),
		officer:    id.UserID(uuid.New()),
		external:   id.UserID(uuid.New()),
		director:   id.UserID(uuid.New()),
		projectID:  id.ProjectID(uuid.New()),
	}
	f.roles.Grant(f.reviewer, id.RoleInternalReviewer)
	f.roles.Grant(f.officer, id.RoleComplianceOfficer)
	f.roles.Grant(f.external, id.RoleExternalReviewer)
	f.roles.Grant(f.director, id.RoleExecutiveDirector)

	f.svc = NewService(Config{
		Projects:  f.projects,
		Identity:  identity.NewService(f.roles),
		Checklist: f.checklists,
		Ledger:    f.remarks,
		Events:    f.notifier,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, f.svc.Register(context.Background(), f.projectID))
	return f
}

func draftFor(assignee id.UserID, message string) []remark.Draft {
	return []remark.Draft{{Message: message, AssignedTo: assignee}}
}

func TestRegister(t *testing.T) {
	f := newEngine(t)

	st, version, err := f.svc.GetStage(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, stage.InternalReview, st)
	assert.Equal(t, uint64(1), version)

	err = f.svc.Register(context.Background(), f.projectID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestDecide_ApproveAdvancesOneStage(t *testing.T) {
	f := newEngine(t)

	decision, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionApprove, draftFor(f.officer, "budget plan looks sound"))
	require.NoError(t, err)
	assert.Equal(t, stage.InternalReview, decision.FromStage)
	assert.Equal(t, stage.InternalCompliance, decision.ToStage)
	require.Len(t, decision.RemarkIDs, 1)

	remarks, err := f.remarks.ListByProject(context.Background(), f.projectID)
	require.NoError(t, err)
	require.Len(t, remarks, 1)
	assert.Equal(t, stage.InternalReview, remarks[0].StageAtCreation)
	assert.Equal(t, f.reviewer, remarks[0].CreatedBy)
	assert.Equal(t, f.officer, remarks[0].AssignedTo)

	require.Len(t, f.notifier.events, 1)
	event := f.notifier.events[0]
	assert.Equal(t, notify.KindStageAdvanced, event.Kind)
	assert.Equal(t, stage.InternalReview, event.FromStage)
	assert.Equal(t, stage.InternalCompliance, event.Stage)
	assert.Equal(t, f.reviewer, event.ActorID)
	assert.Equal(t, string(ActionApprove), event.Detail)
	assert.Equal(t, decision.RemarkIDs, event.RemarkIDs)
}

func TestDecide_FullApprovalWalk(t *testing.T) {
	f := newEngine(t)
	f.checklists.status[f.projectID] = checklist.StatusApproved

	steps := []struct {
		actor id.UserID
		want  stage.Stage
	}{
		{f.reviewer, stage.InternalCompliance},
		{f.officer, stage.ExternalReview},
		{f.external, stage.ExternalCompliance},
		{f.officer, stage.FinalApproval},
		{f.director, stage.Approved},
	}
	for _, step := range steps {
		decision, err := f.svc.Decide(context.Background(), f.projectID, step.actor,
			ActionApprove, draftFor(f.reviewer, "advance"))
		require.NoError(t, err)
		assert.Equal(t, step.want, decision.ToStage)
	}

	last := f.notifier.events[len(f.notifier.events)-1]
	assert.Equal(t, notify.KindProjectApproved, last.Kind)
}

func TestDecide_UnauthorizedRole(t *testing.T) {
	f := newEngine(t)

	// The executive director has no say at internal review.
	_, err := f.svc.Decide(context.Background(), f.projectID, f.director,
		ActionApprove, draftFor(f.officer, "should not land"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestDecide_RequiresRemarks(t *testing.T) {
	f := newEngine(t)

	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer, ActionApprove, nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidRemark))
}

func TestDecide_RejectsUnknownAssignee(t *testing.T) {
	f := newEngine(t)

	drafts := []remark.Draft{
		{Message: "fine", AssignedTo: f.officer},
		{Message: "orphan", AssignedTo: id.UserID(uuid.New())},
	}
	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer, ActionApprove, drafts)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidRemark))

	// The bad draft rejected the whole list before any write.
	remarks, err := f.remarks.ListByProject(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Empty(t, remarks)
	st, _, err := f.svc.GetStage(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, stage.InternalReview, st)
}

func TestDecide_ComplianceGate(t *testing.T) {
	f := newEngine(t)
	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionApprove, draftFor(f.officer, "advance"))
	require.NoError(t, err)

	// Checklist still pending: internal compliance cannot close.
	_, err = f.svc.Decide(context.Background(), f.projectID, f.officer,
		ActionApprove, draftFor(f.officer, "close out"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeComplianceNotApproved))

	f.checklists.status[f.projectID] = checklist.StatusApproved
	decision, err := f.svc.Decide(context.Background(), f.projectID, f.officer,
		ActionApprove, draftFor(f.officer, "close out"))
	require.NoError(t, err)
	assert.Equal(t, stage.ExternalReview, decision.ToStage)
}

func TestDecide_DisapproveSkipsComplianceGate(t *testing.T) {
	f := newEngine(t)
	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionApprove, draftFor(f.officer, "advance"))
	require.NoError(t, err)

	decision, err := f.svc.Decide(context.Background(), f.projectID, f.officer,
		ActionDisapprove, draftFor(f.reviewer, "funding source unverifiable"))
	require.NoError(t, err)
	assert.Equal(t, stage.Disapproved, decision.ToStage)

	last := f.notifier.events[len(f.notifier.events)-1]
	assert.Equal(t, notify.KindProjectDisapproved, last.Kind)
}

func TestDecide_TerminalRejectsReplay(t *testing.T) {
	f := newEngine(t)
	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionDisapprove, draftFor(f.officer, "incomplete proposal"))
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionDisapprove, draftFor(f.officer, "incomplete proposal"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyTerminal))
}

// staleStore serves a fixed read but always loses the commit race.
type staleStore struct {
	*InMemoryProjectStore
}

func (s *staleStore) CompareAndSetStage(context.Context, id.ProjectID, uint64, stage.Stage) error {
	return sentinel.ErrVersionConflict
}

func TestDecide_StaleStage(t *testing.T) {
	f := newEngine(t)
	f.svc.projects = &staleStore{InMemoryProjectStore: f.projects}

	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionApprove, draftFor(f.officer, "advance"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStaleStage))

	// Nothing was appended for the lost race.
	remarks, err := f.remarks.ListByProject(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Empty(t, remarks)
}

func TestListStageRoster(t *testing.T) {
	f := newEngine(t)
	other := id.ProjectID(uuid.New())
	require.NoError(t, f.svc.Register(context.Background(), other))

	summaries, err := f.svc.ListStageRoster(context.Background(), stage.InternalReview)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	summaries, err = f.svc.ListStageRoster(context.Background(), stage.Approved)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, err = f.svc.ListStageRoster(context.Background(), stage.Stage("archived"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStage))
}

func TestProjectDetail(t *testing.T) {
	f := newEngine(t)
	_, err := f.svc.Decide(context.Background(), f.projectID, f.reviewer,
		ActionApprove, draftFor(f.officer, "check the annexes"))
	require.NoError(t, err)

	detail, err := f.svc.ProjectDetail(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, stage.InternalCompliance, detail.Stage)
	require.NotNil(t, detail.Checklist)
	assert.Equal(t, checklist.StatusPending, detail.Checklist.Status)
	require.Len(t, detail.Remarks, 1)
	assert.Equal(t, "check the annexes", detail.Remarks[0].Message)
}

func TestProjectDetail_UnknownProject(t *testing.T) {
	f := newEngine(t)

	_, err := f.svc.ProjectDetail(context.Background(), id.ProjectID(uuid.New()))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
