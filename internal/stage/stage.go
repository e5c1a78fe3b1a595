// Package stage defines the ordered approval pipeline and which roles may act
// at each position. Pure lookup tables - no I/O, no side effects - so every
// transition rule stays centralized and testable.
package stage

import (
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
)

// Stage is a project's position in the approval pipeline.
type Stage string

const (
	InternalReview     Stage = "internal_review"
	InternalCompliance Stage = "internal_compliance"
	ExternalReview     Stage = "external_review"
	ExternalCompliance Stage = "external_compliance"
	FinalApproval      Stage = "final_approval"
	Approved           Stage = "approved"
	Disapproved        Stage = "disapproved"
)

// order lists the non-terminal pipeline in review order. Approved follows the
// last entry; Disapproved is reachable from any non-terminal stage.
var order = []Stage{
	InternalReview,
	InternalCompliance,
	ExternalReview,
	ExternalCompliance,
	FinalApproval,
}

var validStages = map[Stage]bool{
	InternalReview:     true,
	InternalCompliance: true,
	ExternalReview:     true,
	ExternalCompliance: true,
	FinalApproval:      true,
	Approved:           true,
	Disapproved:        true,
}

var terminalStages = map[Stage]bool{
	Approved:    true,
	Disapproved: true,
}

// authorizedRoles is the single source of truth for who may decide at each
// stage. The checklist capability checks live in the checklist package; this
// table only governs stage decisions.
var authorizedRoles = map[Stage]id.RoleSet{
	InternalReview:     id.NewRoleSet(id.RoleInternalReviewer),
	InternalCompliance: id.NewRoleSet(id.RoleComplianceOfficer, id.RoleComplianceHead),
	ExternalReview:     id.NewRoleSet(id.RoleExternalReviewer),
	ExternalCompliance: id.NewRoleSet(id.RoleComplianceOfficer, id.RoleComplianceHead),
	FinalApproval:      id.NewRoleSet(id.RoleExecutiveDirector),
}

// complianceStages are the stages whose approval is gated on the checklist.
var complianceStages = map[Stage]bool{
	InternalCompliance: true,
	ExternalCompliance: true,
}

// String returns the wire representation of the stage.
func (s Stage) String() string { return string(s) }

// IsValid reports whether the stage is a recognized pipeline value.
func (s Stage) IsValid() bool { return validStages[s] }

// IsTerminal reports whether no further transitions are allowed.
func (s Stage) IsTerminal() bool { return terminalStages[s] }

// RequiresCompliance reports whether approving this stage is gated on the
// project's checklist being approved.
func (s Stage) RequiresCompliance() bool { return complianceStages[s] }

// Parse validates a raw stage string.
func Parse(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidStage, "unrecognized stage: "+raw)
	}
	return s, nil
}

// Next returns the stage that follows current on approval, and false for the
// two terminal stages. Unknown stages fail InvalidStage.
func Next(current Stage) (Stage, bool, error) {
	if !current.IsValid() {
		return "", false, dErrors.New(dErrors.CodeInvalidStage, "unrecognized stage: "+current.String())
	}
	if current.IsTerminal() {
		return "", false, nil
	}
	for i, s := range order {
		if s != current {
			continue
		}
		if i == len(order)-1 {
			return Approved, true, nil
		}
		return order[i+1], true, nil
	}
	// Unreachable while order and validStages agree.
	return "", false, dErrors.New(dErrors.CodeInvalidStage, "stage missing from pipeline order: "+current.String())
}

// AuthorizedRoles returns the roles allowed to decide at the given stage.
// Terminal stages have no authorized roles.
func AuthorizedRoles(s Stage) (id.RoleSet, error) {
	if !s.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidStage, "unrecognized stage: "+s.String())
	}
	roles, ok := authorizedRoles[s]
	if !ok {
		return id.RoleSet{}, nil
	}
	return roles, nil
}

// Order returns the non-terminal pipeline in review order. Callers get a copy
// so the registry's table stays immutable.
func Order() []Stage {
	out := make([]Stage, len(order))
	copy(out, order)
	return out
}
