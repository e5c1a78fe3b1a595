package domain

// Role names a reviewer function in the approval pipeline. Roles are granted
// by the host application's identity records; this core only reads them.
type Role string

const (
	RoleInternalReviewer  Role = "internal_reviewer"
	RoleComplianceOfficer Role = "compliance_officer"
	RoleComplianceHead    Role = "compliance_head"
	RoleExternalReviewer  Role = "external_reviewer"
	RoleExecutiveDirector Role = "executive_director"
)

var validRoles = map[Role]bool{
	RoleInternalReviewer:  true,
	RoleComplianceOfficer: true,
	RoleComplianceHead:    true,
	RoleExternalReviewer:  true,
	RoleExecutiveDirector: true,
}

// IsValid reports whether the role is a recognized grantflow role.
func (r Role) IsValid() bool { return validRoles[r] }

func (r Role) String() string { return string(r) }

// RoleSet is an unordered set of roles held by one actor.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles, dropping duplicates.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the role.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set intersects with other.
func (s RoleSet) HasAny(other RoleSet) bool {
	for role := range other {
		if s.Has(role) {
			return true
		}
	}
	return false
}

// List returns the roles as a slice in unspecified order.
func (s RoleSet) List() []Role {
	roles := make([]Role, 0, len(s))
	for r := range s {
		roles = append(roles, r)
	}
	return roles
}
