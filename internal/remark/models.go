// Package remark is the append-only ledger of decision remarks. Remarks are
// created only as a side effect of an approval or checklist transition and are
// never edited or deleted afterwards; the assignee may only flip the todo/done
// status, which touches nothing else.
package remark

import (
	"strings"
	"time"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
)

// Status is the follow-up sub-status of a remark.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// Toggle flips todo <-> done.
func (s Status) Toggle() Status {
	if s == StatusTodo {
		return StatusDone
	}
	return StatusTodo
}

// Remark is one assigned follow-up note in a project's audit trail.
type Remark struct {
	ID              id.RemarkID
	ProjectID       id.ProjectID
	Message         string
	AssignedTo      id.UserID
	CreatedBy       id.UserID
	Status          Status
	StageAtCreation stage.Stage
	CreatedAt       time.Time
}

// Draft is a remark as submitted with a decision, before ids and timestamps
// are assigned.
type Draft struct {
	Message    string
	AssignedTo id.UserID
}

// minDenialLength is the trimmed minimum for denial-path remarks; approval
// remarks only need to be non-empty.
const minDenialLength = 5

// Validate enforces the draft invariants shared by all transitions.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Message) == "" {
		return dErrors.New(dErrors.CodeInvalidRemark, "remark message must not be empty")
	}
	if d.AssignedTo.IsZero() {
		return dErrors.New(dErrors.CodeInvalidRemark, "remark assignee is required")
	}
	return nil
}

// ValidateDenialMessage enforces the longer minimum applied to denial-path
// remark messages.
func ValidateDenialMessage(message string) error {
	if len(strings.TrimSpace(message)) < minDenialLength {
		return dErrors.New(dErrors.CodeRemarkTooShort, "denial remark must be at least 5 characters")
	}
	return nil
}
