package handler

import (
	"time"

	"grantflow/internal/remark"
)

// RemarkResponse is the HTTP representation of one remark.
type RemarkResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Message    string    `json:"message"`
	AssignedTo string    `json:"assigned_to"`
	CreatedBy  string    `json:"created_by"`
	Status     string    `json:"status"`
	Stage      string    `json:"stage"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromRemark converts a domain remark to an HTTP response.
func FromRemark(rm *remark.Remark) *RemarkResponse {
	return &RemarkResponse{
		ID:         rm.ID.String(),
		ProjectID:  rm.ProjectID.String(),
		Message:    rm.Message,
		AssignedTo: rm.AssignedTo.String(),
		CreatedBy:  rm.CreatedBy.String(),
		Status:     string(rm.Status),
		Stage:      rm.StageAtCreation.String(),
		CreatedAt:  rm.CreatedAt,
	}
}

// ListResponse is the HTTP response for GET /projects/{projectID}/remarks.
type ListResponse struct {
	Remarks []RemarkResponse `json:"remarks"`
}

// FromRemarks converts a remark list to an HTTP response.
func FromRemarks(remarks []*remark.Remark) *ListResponse {
	out := make([]RemarkResponse, 0, len(remarks))
	for _, rm := range remarks {
		out = append(out, *FromRemark(rm))
	}
	return &ListResponse{Remarks: out}
}
