package handler

import (
	"strings"

	dErrors "grantflow/pkg/domain-errors"
)

// SetLinkRequest is the HTTP request body for PUT /projects/{projectID}/checklist/links/{slot}.
// An empty url clears the slot.
type SetLinkRequest struct {
	URL string `json:"url"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SetLinkRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.URL = strings.TrimSpace(r.URL)
	if len(r.URL) > 2048 {
		return dErrors.New(dErrors.CodeValidation, "url must be at most 2048 characters")
	}
	return nil
}

// DenyRequest is the HTTP request body for POST /projects/{projectID}/checklist/deny.
type DenyRequest struct {
	Remark string `json:"remark"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
// Length policy for the remark itself belongs to the gate.
func (r *DenyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Remark) > 4096 {
		return dErrors.New(dErrors.CodeValidation, "remark must be at most 4096 characters")
	}
	return nil
}
