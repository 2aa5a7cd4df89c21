package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/election"
)

type electionRepository struct {
	db *sqlx.DB
}

// NewElectionRepository creates a postgres-backed election repository
func NewElectionRepository(db *sqlx.DB) election.Repository {
	return &electionRepository{db: db}
}

const electionColumns = `id, title, description, election_status, opens_at, closes_at,
	creator_id, status, created_at, updated_at, created_by, updated_by`

func (r *electionRepository) Create(ctx context.Context, e *election.Election) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO elections (`+electionColumns+`)
		VALUES (:id, :title, :description, :election_status, :opens_at, :closes_at,
			:creator_id, :status, :created_at, :updated_at, :created_by, :updated_by)`,
		e,
	)
	return err
}

func (r *electionRepository) Get(ctx context.Context, id string) (*election.Election, error) {
	var e election.Election
	if err := r.db.GetContext(ctx, &e, `
		SELECT `+electionColumns+` FROM elections WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *electionRepository) Update(ctx context.Context, e *election.Election) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE elections
		SET title = :title, description = :description,
		    election_status = :election_status, opens_at = :opens_at,
		    closes_at = :closes_at, status = :status,
		    updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`,
		e,
	)
	return err
}

func (r *electionRepository) List(ctx context.Context) ([]*election.Election, error) {
	var elections []*election.Election
	if err := r.db.SelectContext(ctx, &elections, `
		SELECT `+electionColumns+` FROM elections
		ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return elections, nil
}

type candidateRepository struct {
	db *sqlx.DB
}

// NewCandidateRepository creates a postgres-backed candidate repository
func NewCandidateRepository(db *sqlx.DB) election.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `id, election_id, name, statement, created_at`

func (r *candidateRepository) Create(ctx context.Context, c *election.Candidate) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO election_candidates (`+candidateColumns+`)
		VALUES (:id, :election_id, :name, :statement, :created_at)`,
		c,
	)
	return err
}

func (r *candidateRepository) Get(ctx context.Context, id string) (*election.Candidate, error) {
	var c election.Candidate
	if err := r.db.GetContext(ctx, &c, `
		SELECT `+candidateColumns+` FROM election_candidates WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) ListByElection(ctx context.Context, electionID string) ([]*election.Candidate, error) {
	var candidates []*election.Candidate
	if err := r.db.SelectContext(ctx, &candidates, `
		SELECT `+candidateColumns+` FROM election_candidates
		WHERE election_id = $1
		ORDER BY name`, electionID); err != nil {
		return nil, err
	}
	return candidates, nil
}

type ballotRepository struct {
	db *sqlx.DB
}

// NewBallotRepository creates a postgres-backed ballot repository
func NewBallotRepository(db *sqlx.DB) election.BallotRepository {
	return &ballotRepository{db: db}
}

const ballotColumns = `id, election_id, owner_id, token, issued_at, voted_at, invalidated_at`

func (r *ballotRepository) Create(ctx context.Context, b *election.Ballot) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO election_ballots (`+ballotColumns+`)
		VALUES (:id, :election_id, :owner_id, :token, :issued_at, :voted_at, :invalidated_at)`,
		b,
	)
	return err
}

func (r *ballotRepository) Get(ctx context.Context, id string) (*election.Ballot, error) {
	var b election.Ballot
	if err := r.db.GetContext(ctx, &b, `
		SELECT `+ballotColumns+` FROM election_ballots WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ballotRepository) GetByToken(ctx context.Context, token string) (*election.Ballot, error) {
	var b election.Ballot
	if err := r.db.GetContext(ctx, &b, `
		SELECT `+ballotColumns+` FROM election_ballots WHERE token = $1`, token); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ballotRepository) GetByElectionAndOwner(ctx context.Context, electionID, ownerID string) (*election.Ballot, error) {
	var b election.Ballot
	if err := r.db.GetContext(ctx, &b, `
		SELECT `+ballotColumns+` FROM election_ballots
		WHERE election_id = $1 AND owner_id = $2`, electionID, ownerID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ballotRepository) Update(ctx context.Context, b *election.Ballot) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE election_ballots
		SET token = :token, issued_at = :issued_at, voted_at = :voted_at,
		    invalidated_at = :invalidated_at
		WHERE id = :id`,
		b,
	)
	return err
}

func (r *ballotRepository) ListByElection(ctx context.Context, electionID string) ([]*election.Ballot, error) {
	var ballots []*election.Ballot
	if err := r.db.SelectContext(ctx, &ballots, `
		SELECT `+ballotColumns+` FROM election_ballots
		WHERE election_id = $1
		ORDER BY issued_at`, electionID); err != nil {
		return nil, err
	}
	return ballots, nil
}

type voteRepository struct {
	db *sqlx.DB
}

// NewVoteRepository creates a postgres-backed vote repository. The
// unique index on ballot_id makes a second insert for the same ballot
// fail, which is the double-vote safety net.
func NewVoteRepository(db *sqlx.DB) election.VoteRepository {
	return &voteRepository{db: db}
}

const voteColumns = `id, election_id, candidate_id, ballot_id, write_in, submitted_at`

func (r *voteRepository) Create(ctx context.Context, v *election.Vote) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO election_votes (`+voteColumns+`)
		VALUES (:id, :election_id, :candidate_id, :ballot_id, :write_in, :submitted_at)`,
		v,
	)
	return err
}

func (r *voteRepository) GetByBallot(ctx context.Context, ballotID string) (*election.Vote, error) {
	var v election.Vote
	if err := r.db.GetContext(ctx, &v, `
		SELECT `+voteColumns+` FROM election_votes WHERE ballot_id = $1`, ballotID); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voteRepository) ListByElection(ctx context.Context, electionID string) ([]*election.Vote, error) {
	var votes []*election.Vote
	if err := r.db.SelectContext(ctx, &votes, `
		SELECT `+voteColumns+` FROM election_votes
		WHERE election_id = $1
		ORDER BY submitted_at`, electionID); err != nil {
		return nil, err
	}
	return votes, nil
}
