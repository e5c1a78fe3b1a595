package approval

import (
	"time"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
)

// Action is a reviewer's verdict on a project at its current stage.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionDisapprove Action = "disapprove"
)

// ParseAction validates an action string from the transport layer.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionApprove, ActionDisapprove:
		return Action(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "action must be approve or disapprove")
	}
}

// ProjectSummary is one roster row: where a project sits in the lifecycle.
type ProjectSummary struct {
	ProjectID id.ProjectID
	Stage     stage.Stage
	Version   uint64
	UpdatedAt time.Time
}

// Decision reports a committed stage transition.
type Decision struct {
	ProjectID id.ProjectID
	FromStage stage.Stage
	ToStage   stage.Stage
	Action    Action
	RemarkIDs []id.RemarkID
}
