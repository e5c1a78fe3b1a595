// Package checklist owns the compliance evidence sub-state of a project: four
// document link slots and the Pending/Raised/Approved status that gates the
// compliance stages of the approval pipeline.
package checklist

import (
	"time"

	id "grantflow/pkg/domain"
)

// SlotCount is the fixed number of evidence link slots per project.
const SlotCount = 4

// Status is the checklist's own lifecycle, independent of the project stage.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRaised   Status = "raised"
	StatusApproved Status = "approved"
)

// Slot is one evidence link. An empty URL means the slot is unfilled.
type Slot struct {
	URL     string
	AddedBy id.UserID
	AddedAt time.Time
}

// IsFilled reports whether the slot holds a link.
func (s Slot) IsFilled() bool { return s.URL != "" }

// Checklist aggregates a project's evidence slots and status.
type Checklist struct {
	ProjectID id.ProjectID
	Slots     [SlotCount]Slot
	Status    Status
}

// NewChecklist returns the lazily-created default: all slots empty, Pending.
func NewChecklist(projectID id.ProjectID) *Checklist {
	return &Checklist{ProjectID: projectID, Status: StatusPending}
}

// FilledCount returns how many slots hold a link.
func (c *Checklist) FilledCount() int {
	n := 0
	for _, s := range c.Slots {
		if s.IsFilled() {
			n++
		}
	}
	return n
}

// IsComplete reports whether every slot is filled.
func (c *Checklist) IsComplete() bool { return c.FilledCount() == SlotCount }

// LastContributor returns the most recent slot contributor, by AddedAt, and
// false when no slot is filled.
func (c *Checklist) LastContributor() (id.UserID, bool) {
	var (
		latest id.UserID
		at     time.Time
		found  bool
	)
	for _, s := range c.Slots {
		if !s.IsFilled() {
			continue
		}
		if !found || s.AddedAt.After(at) {
			latest = s.AddedBy
			at = s.AddedAt
			found = true
		}
	}
	return latest, found
}

// Clone returns a deep copy so callers can mutate without touching the
// store's snapshot.
func (c *Checklist) Clone() *Checklist {
	clone := *c
	return &clone
}
