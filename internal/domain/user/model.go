package user

import (
	"github.com/openhoa/openhoa/internal/types"
)

// User is an authenticated account in the association back office.
// Role names are resolved into a types.RoleSet once per request; the
// engines only ever see the resolved set.
type User struct {
	ID    string       `db:"id" json:"id"`
	Email string       `db:"email" json:"email"`
	Name  string       `db:"name" json:"name"`
	Roles []types.Role `db:"-" json:"roles"`
	types.BaseModel
}

// IsActive reports whether the account may act or be notified
func (u *User) IsActive() bool {
	return u.Status == types.StatusActive
}

// RoleSet returns the user's roles as a capability set
func (u *User) RoleSet() types.RoleSet {
	return types.NewRoleSet(u.Roles...)
}
