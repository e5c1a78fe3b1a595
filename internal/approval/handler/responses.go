package handler

import (
	"time"

	"grantflow/internal/approval"
	"grantflow/internal/checklist"
	"grantflow/internal/remark"
)

// DecisionResponse is the HTTP response for POST /projects/{projectID}/decision.
type DecisionResponse struct {
	ProjectID string   `json:"project_id"`
	FromStage string   `json:"from_stage"`
	ToStage   string   `json:"to_stage"`
	Action    string   `json:"action"`
	RemarkIDs []string `json:"remark_ids"`
}

// FromDecision converts a committed decision to an HTTP response.
func FromDecision(decision *approval.Decision) *DecisionResponse {
	remarkIDs := make([]string, 0, len(decision.RemarkIDs))
	for _, remarkID := range decision.RemarkIDs {
		remarkIDs = append(remarkIDs, remarkID.String())
	}
	return &DecisionResponse{
		ProjectID: decision.ProjectID.String(),
		FromStage: decision.FromStage.String(),
		ToStage:   decision.ToStage.String(),
		Action:    string(decision.Action),
		RemarkIDs: remarkIDs,
	}
}

// ProjectSummaryResponse is one row of GET /stages/{stage}/projects.
type ProjectSummaryResponse struct {
	ProjectID string    `json:"project_id"`
	Stage     string    `json:"stage"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterResponse is the HTTP response for GET /stages/{stage}/projects.
type RosterResponse struct {
	Stage    string                   `json:"stage"`
	Projects []ProjectSummaryResponse `json:"projects"`
}

// FromSummaries converts roster rows to an HTTP response.
func FromSummaries(st string, summaries []approval.ProjectSummary) *RosterResponse {
	projects := make([]ProjectSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		projects = append(projects, ProjectSummaryResponse{
			ProjectID: summary.ProjectID.String(),
			Stage:     summary.Stage.String(),
			UpdatedAt: summary.UpdatedAt,
		})
	}
	return &RosterResponse{Stage: st, Projects: projects}
}

// SlotResponse is one checklist slot in a project detail response.
type SlotResponse struct {
	URL     string     `json:"url"`
	AddedBy string     `json:"added_by,omitempty"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// ChecklistResponse is the checklist portion of a project detail response.
type ChecklistResponse struct {
	Status string         `json:"status"`
	Slots  []SlotResponse `json:"slots"`
}

// RemarkResponse is one remark in a project detail response.
type RemarkResponse struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	AssignedTo string    `json:"assigned_to"`
	CreatedBy  string    `json:"created_by"`
	Status     string    `json:"status"`
	Stage      string    `json:"stage"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProjectDetailResponse is the HTTP response for GET /projects/{projectID}.
type ProjectDetailResponse struct {
	ProjectID string            `json:"project_id"`
	Stage     string            `json:"stage"`
	Checklist ChecklistResponse `json:"checklist"`
	Remarks   []RemarkResponse  `json:"remarks"`
}

// FromDetail converts an aggregated project view to an HTTP response.
func FromDetail(detail *approval.ProjectDetail) *ProjectDetailResponse {
	return &ProjectDetailResponse{
		ProjectID: detail.ProjectID.String(),
		Stage:     detail.Stage.String(),
		Checklist: checklistResponse(detail.Checklist),
		Remarks:   remarkResponses(detail.Remarks),
	}
}

func checklistResponse(c *checklist.Checklist) ChecklistResponse {
	resp := ChecklistResponse{
		Status: string(c.Status),
		Slots:  make([]SlotResponse, 0, checklist.SlotCount),
	}
	for _, slot := range c.Slots {
		out := SlotResponse{URL: slot.URL}
		if slot.IsFilled() {
			out.AddedBy = slot.AddedBy.String()
			at := slot.AddedAt
			out.AddedAt = &at
		}
		resp.Slots = append(resp.Slots, out)
	}
	return resp
}

func remarkResponses(remarks []*remark.Remark) []RemarkResponse {
	out := make([]RemarkResponse, 0, len(remarks))
	for _, rm := range remarks {
		out = append(out, RemarkResponse{
			ID:         rm.ID.String(),
			Message:    rm.Message,
			AssignedTo: rm.AssignedTo.String(),
			CreatedBy:  rm.CreatedBy.String(),
			Status:     string(rm.Status),
			Stage:      rm.StageAtCreation.String(),
			CreatedAt:  rm.CreatedAt,
		})
	}
	return out
}
