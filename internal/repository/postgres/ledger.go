package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/ledger"
)

type ledgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a postgres-backed ledger repository
func NewLedgerRepository(db *sqlx.DB) ledger.Repository {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, owner_id, entry_type, amount, memo, due_date, created_at, created_by`

func (r *ledgerRepository) Create(ctx context.Context, e *ledger.Entry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES (:id, :owner_id, :entry_type, :amount, :memo, :due_date, :created_at, :created_by)`,
		e,
	)
	return err
}

func (r *ledgerRepository) Get(ctx context.Context, id string) (*ledger.Entry, error) {
	var e ledger.Entry
	if err := r.db.GetContext(ctx, &e, `
		SELECT `+ledgerColumns+` FROM ledger_entries WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ledgerRepository) ListByOwner(ctx context.Context, ownerID string) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	if err := r.db.SelectContext(ctx, &entries, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE owner_id = $1
		ORDER BY created_at, id`, ownerID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepository) GetByOwnerAndMemo(ctx context.Context, ownerID, memo string) (*ledger.Entry, error) {
	var e ledger.Entry
	if err := r.db.GetContext(ctx, &e, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE owner_id = $1 AND memo = $2
		ORDER BY created_at
		LIMIT 1`, ownerID, memo); err != nil {
		return nil, err
	}
	return &e, nil
}

type fineScheduleRepository struct {
	db *sqlx.DB
}

// NewFineScheduleRepository creates a postgres-backed fine schedule repository
func NewFineScheduleRepository(db *sqlx.DB) ledger.FineScheduleRepository {
	return &fineScheduleRepository{db: db}
}

const fineScheduleColumns = `id, category, flat_amount, late_fee_percent, created_at`

func (r *fineScheduleRepository) Get(ctx context.Context, id string) (*ledger.FineSchedule, error) {
	var fs ledger.FineSchedule
	if err := r.db.GetContext(ctx, &fs, `
		SELECT `+fineScheduleColumns+` FROM fine_schedules WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &fs, nil
}

func (r *fineScheduleRepository) Create(ctx context.Context, fs *ledger.FineSchedule) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO fine_schedules (`+fineScheduleColumns+`)
		VALUES (:id, :category, :flat_amount, :late_fee_percent, :created_at)`,
		fs,
	)
	return err
}
