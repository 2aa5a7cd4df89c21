package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/arc"
)

type arcRepository struct {
	db *sqlx.DB
}

// NewARCRepository creates a postgres-backed ARC request repository
func NewARCRepository(db *sqlx.DB) arc.Repository {
	return &arcRepository{db: db}
}

const arcColumns = `id, owner_id, submitter_id, reviewer_id, title, project_type,
	description, arc_status, submitted_at, revision_requested_at,
	decision_at, decision_by, completed_at, archived_at, decision_notes,
	decision_notified, notified_status, status, created_at, updated_at, created_by, updated_by`

func (r *arcRepository) Create(ctx context.Context, req *arc.Request) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO arc_requests (`+arcColumns+`)
		VALUES (:id, :owner_id, :submitter_id, :reviewer_id, :title, :project_type,
			:description, :arc_status, :submitted_at, :revision_requested_at,
			:decision_at, :decision_by, :completed_at, :archived_at, :decision_notes,
			:decision_notified, :notified_status, :status, :created_at, :updated_at, :created_by, :updated_by)`,
		req,
	)
	return err
}

func (r *arcRepository) Get(ctx context.Context, id string) (*arc.Request, error) {
	var req arc.Request
	if err := r.db.GetContext(ctx, &req, `
		SELECT `+arcColumns+` FROM arc_requests WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *arcRepository) Update(ctx context.Context, req *arc.Request) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE arc_requests
		SET reviewer_id = :reviewer_id, title = :title, project_type = :project_type,
		    description = :description, arc_status = :arc_status,
		    submitted_at = :submitted_at, revision_requested_at = :revision_requested_at,
		    decision_at = :decision_at, decision_by = :decision_by,
		    completed_at = :completed_at, archived_at = :archived_at,
		    decision_notes = :decision_notes, decision_notified = :decision_notified,
		    notified_status = :notified_status, status = :status,
		    updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`,
		req,
	)
	return err
}

func (r *arcRepository) ListByOwner(ctx context.Context, ownerID string) ([]*arc.Request, error) {
	var requests []*arc.Request
	if err := r.db.SelectContext(ctx, &requests, `
		SELECT `+arcColumns+` FROM arc_requests
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID); err != nil {
		return nil, err
	}
	return requests, nil
}

type arcReviewRepository struct {
	db *sqlx.DB
}

// NewARCReviewRepository creates a postgres-backed reviewer verdict repository
func NewARCReviewRepository(db *sqlx.DB) arc.ReviewRepository {
	return &arcReviewRepository{db: db}
}

const arcReviewColumns = `id, request_id, reviewer_id, decision, notes, created_at, updated_at`

func (r *arcReviewRepository) Upsert(ctx context.Context, review *arc.Review) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO arc_reviews (`+arcReviewColumns+`)
		VALUES (:id, :request_id, :reviewer_id, :decision, :notes, :created_at, :updated_at)
		ON CONFLICT (request_id, reviewer_id) DO UPDATE
		SET decision = EXCLUDED.decision, notes = EXCLUDED.notes,
		    updated_at = EXCLUDED.updated_at`,
		review,
	)
	return err
}

func (r *arcReviewRepository) GetByRequestAndReviewer(ctx context.Context, requestID, reviewerID string) (*arc.Review, error) {
	var review arc.Review
	if err := r.db.GetContext(ctx, &review, `
		SELECT `+arcReviewColumns+` FROM arc_reviews
		WHERE request_id = $1 AND reviewer_id = $2`, requestID, reviewerID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *arcReviewRepository) ListByRequest(ctx context.Context, requestID string) ([]*arc.Review, error) {
	var reviews []*arc.Review
	if err := r.db.SelectContext(ctx, &reviews, `
		SELECT `+arcReviewColumns+` FROM arc_reviews
		WHERE request_id = $1
		ORDER BY created_at`, requestID); err != nil {
		return nil, err
	}
	return reviews, nil
}

type arcConditionRepository struct {
	db *sqlx.DB
}

// NewARCConditionRepository creates a postgres-backed approval condition repository
func NewARCConditionRepository(db *sqlx.DB) arc.ConditionRepository {
	return &arcConditionRepository{db: db}
}

const arcConditionColumns = `id, request_id, description, condition_status, resolved_at, resolved_by, created_at`

func (r *arcConditionRepository) Create(ctx context.Context, c *arc.Condition) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO arc_conditions (`+arcConditionColumns+`)
		VALUES (:id, :request_id, :description, :condition_status, :resolved_at, :resolved_by, :created_at)`,
		c,
	)
	return err
}

func (r *arcConditionRepository) Get(ctx context.Context, id string) (*arc.Condition, error) {
	var c arc.Condition
	if err := r.db.GetContext(ctx, &c, `
		SELECT `+arcConditionColumns+` FROM arc_conditions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *arcConditionRepository) Update(ctx context.Context, c *arc.Condition) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE arc_conditions
		SET condition_status = :condition_status, resolved_at = :resolved_at,
		    resolved_by = :resolved_by
		WHERE id = :id`,
		c,
	)
	return err
}

func (r *arcConditionRepository) ListByRequest(ctx context.Context, requestID string) ([]*arc.Condition, error) {
	var conditions []*arc.Condition
	if err := r.db.SelectContext(ctx, &conditions, `
		SELECT `+arcConditionColumns+` FROM arc_conditions
		WHERE request_id = $1
		ORDER BY created_at`, requestID); err != nil {
		return nil, err
	}
	return conditions, nil
}
