package notify

import (
	"time"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
)

// Kind names the lifecycle moment an event records.
type Kind string

const (
	KindStageAdvanced      Kind = "stage_advanced"
	KindProjectApproved    Kind = "project_approved"
	KindProjectDisapproved Kind = "project_disapproved"
	KindChecklistRaised    Kind = "checklist_raised"
	KindChecklistApproved  Kind = "checklist_approved"
	KindChecklistDenied    Kind = "checklist_denied"
)

// Event is emitted from domain logic when a project crosses a lifecycle
// boundary. Keep it transport-agnostic so stores and sinks can fan out.
// EventID, Timestamp and the client metadata are stamped by the publisher
// when the emitting code leaves them empty.
type Event struct {
	EventID   id.EventID    `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	ProjectID id.ProjectID  `json:"project_id"`
	ActorID   id.UserID     `json:"actor_id"`
	Kind      Kind          `json:"kind"`
	FromStage stage.Stage   `json:"from_stage,omitempty"`
	Stage     stage.Stage   `json:"stage"`
	Detail    string        `json:"detail,omitempty"`
	RemarkIDs []id.RemarkID `json:"remark_ids,omitempty"`
	Device    string        `json:"device,omitempty"`
	ClientIP  string        `json:"client_ip,omitempty"`
}
