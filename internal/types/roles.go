package types

import "github.com/samber/lo"

// Role is the name of an association role granted to a user account
type Role string

const (
	RoleSysadmin  Role = "SYSADMIN"
	RoleBoard     Role = "BOARD"
	RoleSecretary Role = "SECRETARY"
	RoleTreasurer Role = "TREASURER"
	RoleAttorney  Role = "ATTORNEY"
	RoleARC       Role = "ARC"
	RoleManager   Role = "MANAGER"
	RoleOwner     Role = "OWNER"
)

func (r Role) String() string {
	return string(r)
}

// GovernanceRoles are the staff roles that receive workflow status
// notifications for every violation transition.
var GovernanceRoles = []Role{
	RoleBoard,
	RoleSysadmin,
	RoleSecretary,
	RoleTreasurer,
	RoleAttorney,
}

// ARCReviewerRoles are the roles whose active holders are eligible to
// review an architectural request.
var ARCReviewerRoles = []Role{
	RoleARC,
	RoleBoard,
}

// RoleSet is a user's resolved role names, computed once per request.
// Authorization is pure set membership on this value.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from role names
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// NewRoleSetFromStrings builds a RoleSet from raw role name strings
func NewRoleSetFromStrings(roles []string) RoleSet {
	return NewRoleSet(lo.Map(roles, func(r string, _ int) Role { return Role(r) })...)
}

// Has reports whether the set contains the role
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set contains any of the roles
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Names returns the role names as strings
func (s RoleSet) Names() []string {
	return lo.Map(lo.Keys(s), func(r Role, _ int) string { return string(r) })
}
