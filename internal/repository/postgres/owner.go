package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/owner"
	"github.com/openhoa/openhoa/internal/types"
)

type ownerRepository struct {
	db *sqlx.DB
}

// NewOwnerRepository creates a postgres-backed owner repository
func NewOwnerRepository(db *sqlx.DB) owner.Repository {
	return &ownerRepository{db: db}
}

const ownerColumns = `id, name, email, phone, unit, address, status, created_at, updated_at, created_by, updated_by`

func (r *ownerRepository) Create(ctx context.Context, o *owner.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.Name, o.Email, o.Phone, o.Unit, o.Address,
		o.Status, o.CreatedAt, o.UpdatedAt, o.CreatedBy, o.UpdatedBy,
	)
	return err
}

func (r *ownerRepository) Get(ctx context.Context, id string) (*owner.Owner, error) {
	var o owner.Owner
	if err := r.db.GetContext(ctx, &o, `
		SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ownerRepository) List(ctx context.Context) ([]*owner.Owner, error) {
	var owners []*owner.Owner
	if err := r.db.SelectContext(ctx, &owners, `
		SELECT `+ownerColumns+` FROM owners
		WHERE status != $1
		ORDER BY unit`, types.StatusArchived); err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *ownerRepository) Update(ctx context.Context, o *owner.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET name = $2, email = $3, phone = $4, unit = $5, address = $6,
		    status = $7, updated_at = $8, updated_by = $9
		WHERE id = $1`,
		o.ID, o.Name, o.Email, o.Phone, o.Unit, o.Address,
		o.Status, o.UpdatedAt, o.UpdatedBy,
	)
	return err
}

func (r *ownerRepository) GetByUser(ctx context.Context, userID string) (*owner.Owner, error) {
	var o owner.Owner
	if err := r.db.GetContext(ctx, &o, `
		SELECT o.id, o.name, o.email, o.phone, o.unit, o.address,
		       o.status, o.created_at, o.updated_at, o.created_by, o.updated_by
		FROM owners o
		JOIN owner_users ou ON ou.owner_id = o.id
		WHERE ou.user_id = $1`, userID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ownerRepository) ListLinkedUsers(ctx context.Context, ownerID string) ([]string, error) {
	var userIDs []string
	if err := r.db.SelectContext(ctx, &userIDs, `
		SELECT user_id FROM owner_users WHERE owner_id = $1`, ownerID); err != nil {
		return nil, err
	}
	return userIDs, nil
}

// BackfillOwnerUserLinks links owners to user accounts sharing an email
// address. Existing links are left untouched; returns the number of links
// created. Run from cmd/migrate after importing owner rosters.
func BackfillOwnerUserLinks(ctx context.Context, db *sqlx.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO owner_users (owner_id, user_id)
		SELECT o.id, u.id
		FROM owners o
		JOIN users u ON lower(u.email) = lower(o.email)
		WHERE o.email != ''
		ON CONFLICT (owner_id, user_id) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ownerRepository) LinkUser(ctx context.Context, ownerID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owner_users (owner_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, user_id) DO NOTHING`,
		ownerID, userID,
	)
	return err
}
