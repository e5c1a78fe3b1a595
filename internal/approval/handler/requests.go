package handler

import (
	"strings"

	"grantflow/internal/approval"
	"grantflow/internal/remark"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /projects.
type RegisterRequest struct {
	ProjectID string `json:"project_id"`

	parsedProjectID id.ProjectID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	projectID, err := id.ParseProjectID(strings.TrimSpace(r.ProjectID))
	if err != nil {
		return err
	}
	r.parsedProjectID = projectID
	return nil
}

// ParsedProjectID returns the validated project id.
func (r *RegisterRequest) ParsedProjectID() id.ProjectID {
	return r.parsedProjectID
}

// RemarkDraftRequest is one remark in a decision request body.
type RemarkDraftRequest struct {
	Message    string `json:"message"`
	AssignedTo string `json:"assigned_to"`
}

// DecideRequest is the HTTP request body for POST /projects/{projectID}/decision.
type DecideRequest struct {
	Action  string               `json:"action"`
	Remarks []RemarkDraftRequest `json:"remarks"`

	parsedAction approval.Action
	parsedDrafts []remark.Draft
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *DecideRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	action, err := approval.ParseAction(strings.TrimSpace(r.Action))
	if err != nil {
		return err
	}
	r.parsedAction = action

	if len(r.Remarks) == 0 {
		return dErrors.New(dErrors.CodeInvalidRemark, "a decision requires at least one remark")
	}
	drafts := make([]remark.Draft, 0, len(r.Remarks))
	for _, raw := range r.Remarks {
		assignee, err := id.ParseUserID(strings.TrimSpace(raw.AssignedTo))
		if err != nil {
			return dErrors.New(dErrors.CodeInvalidRemark, "remark assigned_to must be a valid user id")
		}
		draft := remark.Draft{
			Message:    strings.TrimSpace(raw.Message),
			AssignedTo: assignee,
		}
		if err := draft.Validate(); err != nil {
			return err
		}
		drafts = append(drafts, draft)
	}
	r.parsedDrafts = drafts
	return nil
}

// ParsedAction returns the validated action.
func (r *DecideRequest) ParsedAction() approval.Action {
	return r.parsedAction
}

// ParsedDrafts returns the validated remark drafts.
func (r *DecideRequest) ParsedDrafts() []remark.Draft {
	return r.parsedDrafts
}
