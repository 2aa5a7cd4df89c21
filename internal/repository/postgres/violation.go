package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/violation"
)

type violationRepository struct {
	db *sqlx.DB
}

// NewViolationRepository creates a postgres-backed violation repository
func NewViolationRepository(db *sqlx.DB) violation.Repository {
	return &violationRepository{db: db}
}

const violationColumns = `id, owner_id, reporter_id, fine_schedule_id, violation_status,
	category, description, location, due_date, hearing_date, fine_amount,
	resolution_notes, status, created_at, updated_at, created_by, updated_by`

func (r *violationRepository) Create(ctx context.Context, v *violation.Violation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO violations (`+violationColumns+`)
		VALUES (:id, :owner_id, :reporter_id, :fine_schedule_id, :violation_status,
			:category, :description, :location, :due_date, :hearing_date, :fine_amount,
			:resolution_notes, :status, :created_at, :updated_at, :created_by, :updated_by)`,
		v,
	)
	return err
}

func (r *violationRepository) Get(ctx context.Context, id string) (*violation.Violation, error) {
	var v violation.Violation
	if err := r.db.GetContext(ctx, &v, `
		SELECT `+violationColumns+` FROM violations WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *violationRepository) Update(ctx context.Context, v *violation.Violation) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE violations
		SET violation_status = :violation_status, category = :category,
		    description = :description, location = :location, due_date = :due_date,
		    hearing_date = :hearing_date, fine_amount = :fine_amount,
		    resolution_notes = :resolution_notes, status = :status,
		    updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`,
		v,
	)
	return err
}

func (r *violationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*violation.Violation, error) {
	var violations []*violation.Violation
	if err := r.db.SelectContext(ctx, &violations, `
		SELECT `+violationColumns+` FROM violations
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID); err != nil {
		return nil, err
	}
	return violations, nil
}

type noticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository creates a postgres-backed notice repository
func NewNoticeRepository(db *sqlx.DB) violation.NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Create(ctx context.Context, n *violation.Notice) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO violation_notices (id, violation_id, sender_id, notice_type,
			template_key, subject, body, document_path, created_at)
		VALUES (:id, :violation_id, :sender_id, :notice_type,
			:template_key, :subject, :body, :document_path, :created_at)`,
		n,
	)
	return err
}

func (r *noticeRepository) ListByViolation(ctx context.Context, violationID string) ([]*violation.Notice, error) {
	var notices []*violation.Notice
	if err := r.db.SelectContext(ctx, &notices, `
		SELECT id, violation_id, sender_id, notice_type, template_key,
		       subject, body, document_path, created_at
		FROM violation_notices
		WHERE violation_id = $1
		ORDER BY created_at`, violationID); err != nil {
		return nil, err
	}
	return notices, nil
}

type appealRepository struct {
	db *sqlx.DB
}

// NewAppealRepository creates a postgres-backed appeal repository
func NewAppealRepository(db *sqlx.DB) violation.AppealRepository {
	return &appealRepository{db: db}
}

const appealColumns = `id, violation_id, owner_id, appeal_status, reason,
	decision_notes, submitted_at, decided_at, reviewer_id`

func (r *appealRepository) Create(ctx context.Context, a *violation.Appeal) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO violation_appeals (`+appealColumns+`)
		VALUES (:id, :violation_id, :owner_id, :appeal_status, :reason,
			:decision_notes, :submitted_at, :decided_at, :reviewer_id)`,
		a,
	)
	return err
}

func (r *appealRepository) Get(ctx context.Context, id string) (*violation.Appeal, error) {
	var a violation.Appeal
	if err := r.db.GetContext(ctx, &a, `
		SELECT `+appealColumns+` FROM violation_appeals WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appealRepository) Update(ctx context.Context, a *violation.Appeal) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE violation_appeals
		SET appeal_status = :appeal_status, decision_notes = :decision_notes,
		    decided_at = :decided_at, reviewer_id = :reviewer_id
		WHERE id = :id`,
		a,
	)
	return err
}

func (r *appealRepository) ListByViolation(ctx context.Context, violationID string) ([]*violation.Appeal, error) {
	var appeals []*violation.Appeal
	if err := r.db.SelectContext(ctx, &appeals, `
		SELECT `+appealColumns+` FROM violation_appeals
		WHERE violation_id = $1
		ORDER BY submitted_at`, violationID); err != nil {
		return nil, err
	}
	return appeals, nil
}
