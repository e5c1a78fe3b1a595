package approval

import (
	"context"

	"grantflow/internal/checklist"
	"grantflow/internal/notify"
	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
)

// ProjectStore persists each project's stage field. The stage is the only
// project state this module owns; everything else about a project belongs to
// the surrounding application.
//
// CompareAndSetStage commits a transition only when the stored version still
// matches expectedVersion, returning sentinel.ErrVersionConflict otherwise.
// expectedVersion 0 registers a new project record.
type ProjectStore interface {
	GetStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error)
	CompareAndSetStage(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, newStage stage.Stage) error
	ListByStage(ctx context.Context, s stage.Stage) ([]ProjectSummary, error)
}

// Identity resolves an actor's roles and confirms remark assignees exist.
type Identity interface {
	RoleOf(ctx context.Context, userID id.UserID) (id.RoleSet, error)
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// ChecklistReader exposes the compliance checklist consulted by the gate at
// the two compliance stages.
type ChecklistReader interface {
	Get(ctx context.Context, projectID id.ProjectID) (*checklist.Checklist, error)
}

// Ledger appends decision remarks and serves the project's remark history.
type Ledger interface {
	AppendAll(ctx context.Context, projectID id.ProjectID, createdBy id.UserID, stageAtCreation stage.Stage, drafts []remark.Draft) ([]id.RemarkID, error)
	ListByProject(ctx context.Context, projectID id.ProjectID) ([]*remark.Remark, error)
}

// Notifier receives lifecycle events. Delivery is fire-and-forget: a failed
// or dropped event never affects a transition that already committed.
type Notifier interface {
	Emit(ctx context.Context, event notify.Event)
}
