package election

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
)

// Election owns its candidates, ballots, and votes
type Election struct {
	ID             string               `db:"id" json:"id"`
	Title          string               `db:"title" json:"title"`
	Description    string               `db:"description" json:"description,omitempty"`
	ElectionStatus types.ElectionStatus `db:"election_status" json:"election_status"`
	OpensAt        *time.Time           `db:"opens_at" json:"opens_at,omitempty"`
	ClosesAt       *time.Time           `db:"closes_at" json:"closes_at,omitempty"`
	CreatorID      string               `db:"creator_id" json:"creator_id"`
	types.BaseModel
}

// IsOpen reports whether ballots may currently be cast
func (e *Election) IsOpen() bool {
	return e.ElectionStatus == types.ElectionStatusOpen
}

// Candidate is a named choice in an election
type Candidate struct {
	ID         string    `db:"id" json:"id"`
	ElectionID string    `db:"election_id" json:"election_id"`
	Name       string    `db:"name" json:"name"`
	Statement  string    `db:"statement" json:"statement,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Ballot is a single owner's voting credential for an election, unique
// per (election, owner). A ballot is voted at most once and only while
// not invalidated.
type Ballot struct {
	ID            string     `db:"id" json:"id"`
	ElectionID    string     `db:"election_id" json:"election_id"`
	OwnerID       string     `db:"owner_id" json:"owner_id"`
	Token         string     `db:"token" json:"token"`
	IssuedAt      time.Time  `db:"issued_at" json:"issued_at"`
	VotedAt       *time.Time `db:"voted_at" json:"voted_at,omitempty"`
	InvalidatedAt *time.Time `db:"invalidated_at" json:"invalidated_at,omitempty"`
}

// HasVoted reports whether the ballot has been cast
func (b *Ballot) HasVoted() bool {
	return b.VotedAt != nil
}

// IsInvalidated reports whether the ballot has been invalidated
func (b *Ballot) IsInvalidated() bool {
	return b.InvalidatedAt != nil
}

// Vote is one cast ballot's choice; CandidateID is nil for pure write-ins.
// Uniqueness on BallotID is the concurrency safety net for double voting.
type Vote struct {
	ID          string    `db:"id" json:"id"`
	ElectionID  string    `db:"election_id" json:"election_id"`
	CandidateID *string   `db:"candidate_id" json:"candidate_id,omitempty"`
	BallotID    string    `db:"ballot_id" json:"ballot_id"`
	WriteIn     string    `db:"write_in" json:"write_in,omitempty"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// CandidateResult is one row of an election's computed results
type CandidateResult struct {
	CandidateID *string `json:"candidate_id,omitempty"`
	Name        string  `json:"name"`
	VoteCount   int     `json:"vote_count"`
	IsWriteIn   bool    `json:"is_write_in,omitempty"`
}

// Stats summarizes turnout for an election
type Stats struct {
	BallotCount    int     `json:"ballot_count"`
	VotesCast      int     `json:"votes_cast"`
	Abstentions    int     `json:"abstentions"`
	TurnoutPercent float64 `json:"turnout_percent"`
	WriteInCount   int     `json:"write_in_count"`
}
