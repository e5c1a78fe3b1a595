package handler

import (
	"time"

	"grantflow/internal/checklist"
)

// SlotResponse is one evidence slot in a checklist response.
type SlotResponse struct {
	URL     string     `json:"url"`
	AddedBy string     `json:"added_by,omitempty"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// ChecklistResponse is the HTTP representation of a project's checklist.
type ChecklistResponse struct {
	ProjectID   string         `json:"project_id"`
	Status      string         `json:"status"`
	FilledCount int            `json:"filled_count"`
	Slots       []SlotResponse `json:"slots"`
}

// FromChecklist converts a domain checklist to an HTTP response.
func FromChecklist(c *checklist.Checklist) *ChecklistResponse {
	resp := &ChecklistResponse{
		ProjectID:   c.ProjectID.String(),
		Status:      string(c.Status),
		FilledCount: c.FilledCount(),
		Slots:       make([]SlotResponse, 0, checklist.SlotCount),
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
