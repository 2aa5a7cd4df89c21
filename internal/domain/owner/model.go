package owner

import (
	"github.com/openhoa/openhoa/internal/types"
)

// Owner is a property owner of record. An owner may be linked to zero or
// more user accounts through the authoritative link table; email matching
// exists only as a one-time backfill, never as a live lookup path.
type Owner struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Unit    string `db:"unit" json:"unit"`
	Address string `db:"address" json:"address,omitempty"`
	types.BaseModel
}

// IsArchived reports whether the owner record has been archived
func (o *Owner) IsArchived() bool {
	return o.Status == types.StatusArchived
}

// UserLink is one row of the owner-to-user link table
type UserLink struct {
	OwnerID string `db:"owner_id" json:"owner_id"`
	UserID  string `db:"user_id" json:"user_id"`
}
