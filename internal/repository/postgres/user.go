package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/openhoa/openhoa/internal/domain/user"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/samber/lo"
)

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a postgres-backed user repository
func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// userRow carries the roles array through pq; the domain model keeps
// the typed slice.
type userRow struct {
	user.User
	RoleNames pq.StringArray `db:"roles"`
}

func (r *userRow) toDomain() *user.User {
	u := r.User
	u.Roles = lo.Map(r.RoleNames, func(name string, _ int) types.Role { return types.Role(name) })
	return &u
}

func roleNames(roles []types.Role) pq.StringArray {
	return lo.Map(roles, func(role types.Role, _ int) string { return string(role) })
}

const userColumns = `id, email, name, roles, status, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.Name, roleNames(u.Roles),
		u.Status, u.CreatedAt, u.UpdatedAt, u.CreatedBy, u.UpdatedBy,
	)
	return err
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) ListByRoles(ctx context.Context, roles []types.Role) ([]*user.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+userColumns+` FROM users
		WHERE status = $1 AND roles && $2`,
		types.StatusActive, roleNames(roles),
	); err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row userRow, _ int) *user.User { return row.toDomain() }), nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2, name = $3, roles = $4, status = $5,
		    updated_at = $6, updated_by = $7
		WHERE id = $1`,
		u.ID, u.Email, u.Name, roleNames(u.Roles),
		u.Status, u.UpdatedAt, u.UpdatedBy,
	)
	return err
}
