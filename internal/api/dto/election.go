package dto

import (
	"time"

	"github.com/openhoa/openhoa/internal/domain/election"
)

// CreateElectionRequest creates a new election in DRAFT
type CreateElectionRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	OpensAt     *time.Time `json:"opens_at,omitempty"`
	ClosesAt    *time.Time `json:"closes_at,omitempty"`
}

func (r *CreateElectionRequest) ToElection() *election.Election {
	return &election.Election{
		Title:       r.Title,
		Description: r.Description,
		OpensAt:     r.OpensAt,
		ClosesAt:    r.ClosesAt,
	}
}

// AddCandidateRequest registers a candidate on an election
type AddCandidateRequest struct {
	Name      string `json:"name" binding:"required"`
	Statement string `json:"statement,omitempty"`
}

// SetElectionStatusRequest moves an election through its lifecycle
type SetElectionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GenerateBallotsRequest mints ballots for the targeted owners;
// an empty owner list targets every non-archived owner
type GenerateBallotsRequest struct {
	OwnerIDs   []string `json:"owner_ids,omitempty"`
	Regenerate bool     `json:"regenerate,omitempty"`
}

// CastVoteRequest casts the caller's ballot for a candidate or write-in
type CastVoteRequest struct {
	BallotID    string  `json:"ballot_id" binding:"required"`
	CandidateID *string `json:"candidate_id,omitempty"`
	WriteIn     string  `json:"write_in,omitempty"`
}

// CastPublicVoteRequest casts a ballot identified only by its token
type CastPublicVoteRequest struct {
	CandidateID *string `json:"candidate_id,omitempty"`
	WriteIn     string  `json:"write_in,omitempty"`
}
