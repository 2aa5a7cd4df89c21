package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/openhoa/openhoa/internal/domain/election"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/openhoa/openhoa/internal/validator"
	"github.com/shopspring/decimal"
)

// RecordVoteRequest casts a ballot for a candidate or a write-in. A vote
// must reference a candidate of the same election or be a pure write-in.
type RecordVoteRequest struct {
	ElectionID  string  `json:"election_id" validate:"required"`
	BallotID    string  `json:"ballot_id" validate:"required"`
	CandidateID *string `json:"candidate_id,omitempty"`
	WriteIn     string  `json:"write_in,omitempty"`
}

// ElectionService is the election ballot/vote engine
type ElectionService interface {
	Create(ctx context.Context, e *election.Election) (*election.Election, error)
	Get(ctx context.Context, id string) (*election.Election, error)
	SetStatus(ctx context.Context, id string, status types.ElectionStatus) (*election.Election, error)
	AddCandidate(ctx context.Context, candidate *election.Candidate) (*election.Candidate, error)
	GenerateBallots(ctx context.Context, electionID string, ownerIDs []string, regenerate bool) ([]*election.Ballot, error)
	GetOrCreateOwnerBallot(ctx context.Context, electionID, userID string) (*election.Ballot, error)
	RecordVote(ctx context.Context, req RecordVoteRequest) (*election.Vote, error)
	RecordPublicVote(ctx context.Context, token string, candidateID *string, writeIn string) (*election.Vote, error)
	InvalidateBallot(ctx context.Context, ballotID string) (*election.Ballot, error)
	ComputeResults(ctx context.Context, electionID string) ([]*election.CandidateResult, error)
	CalculateStats(ctx context.Context, electionID string) (*election.Stats, error)
}

type electionService struct {
	ServiceParams
	audit AuditService
}

// NewElectionService creates a new election engine
func NewElectionService(params ServiceParams) ElectionService {
	return &electionService{
		ServiceParams: params,
		audit:         NewAuditService(params),
	}
}

func (s *electionService) Create(ctx context.Context, e *election.Election) (*election.Election, error) {
	if e.ID == "" {
		e.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ELECTION)
	}
	if e.Title == "" {
		return nil, ierr.NewError("title required").
			WithHint("An election title is required").
			Mark(ierr.ErrValidation)
	}
	e.ElectionStatus = types.ElectionStatusDraft
	e.CreatorID = types.GetUserID(ctx)
	e.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.ElectionRepo.Create(ctx, e); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create election").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "election.created", "election", e.ID, nil, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *electionService) Get(ctx context.Context, id string) (*election.Election, error) {
	e, err := s.ElectionRepo.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Election not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

func (s *electionService) SetStatus(ctx context.Context, id string, status types.ElectionStatus) (*election.Election, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *e
	e.ElectionStatus = status
	e.UpdatedAt = time.Now().UTC()
	e.UpdatedBy = types.GetUserID(ctx)
	if status == types.ElectionStatusArchived {
		e.Status = types.StatusArchived
	}

	if err := s.ElectionRepo.Update(ctx, e); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update election").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "election.status", "election", e.ID, &before, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddCandidate registers a named choice on a draft or open election
func (s *electionService) AddCandidate(ctx context.Context, candidate *election.Candidate) (*election.Candidate, error) {
	e, err := s.Get(ctx, candidate.ElectionID)
	if err != nil {
		return nil, err
	}
	if e.ElectionStatus == types.ElectionStatusClosed || e.ElectionStatus == types.ElectionStatusArchived {
		return nil, ierr.NewError("election no longer accepts candidates").
			WithHint("Candidates may only be added before the election closes").
			Mark(ierr.ErrInvalidOperation)
	}
	if candidate.Name == "" {
		return nil, ierr.NewError("candidate name required").
			WithHint("A candidate name is required").
			Mark(ierr.ErrValidation)
	}

	if candidate.ID == "" {
		candidate.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE)
	}
	candidate.CreatedAt = time.Now().UTC()

	if err := s.CandidateRepo.Create(ctx, candidate); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create candidate").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "election.candidate.added", "election", e.ID, nil, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// mintToken returns a high-entropy voting token
func mintToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// GenerateBallots mints ballots for the target owners (default: all
// non-archived owners). Already-issued, unvoted ballots are untouched
// unless regeneration is explicit.
func (s *electionService) GenerateBallots(ctx context.Context, electionID string, ownerIDs []string, regenerate bool) ([]*election.Ballot, error) {
	e, err := s.Get(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if len(ownerIDs) == 0 {
		owners, err := s.OwnerRepo.List(ctx)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to list owners").
				Mark(ierr.ErrDatabase)
		}
		for _, o := range owners {
			if !o.IsArchived() {
				ownerIDs = append(ownerIDs, o.ID)
			}
		}
	}

	now := time.Now().UTC()
	var issued []*election.Ballot
	for _, ownerID := range ownerIDs {
		existing, err := s.BallotRepo.GetByElectionAndOwner(ctx, e.ID, ownerID)
		if err == nil && existing != nil {
			// Without regenerate, only invalidated unvoted ballots are
			// reissued; valid and voted ballots are returned as-is
			if !regenerate && (!existing.IsInvalidated() || existing.HasVoted()) {
				issued = append(issued, existing)
				continue
			}
			existing.Token = mintToken()
			existing.IssuedAt = now
			existing.VotedAt = nil
			existing.InvalidatedAt = nil
			if err := s.BallotRepo.Update(ctx, existing); err != nil {
				return nil, ierr.WithError(err).
					WithHint("Failed to reissue ballot").
					Mark(ierr.ErrDatabase)
			}
			issued = append(issued, existing)
			continue
		}

		ballot := &election.Ballot{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BALLOT),
			ElectionID: e.ID,
			OwnerID:    ownerID,
			Token:      mintToken(),
			IssuedAt:   now,
		}
		if err := s.BallotRepo.Create(ctx, ballot); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to issue ballot").
				Mark(ierr.ErrDatabase)
		}
		issued = append(issued, ballot)
	}

	if err := s.audit.Record(ctx, "election.ballots.generated", "election", e.ID, nil, map[string]any{
		"ballot_count": len(issued),
	}); err != nil {
		return nil, err
	}

	return issued, nil
}

// GetOrCreateOwnerBallot resolves the caller's ballot for authenticated
// voting, rejecting archived owners.
func (s *electionService) GetOrCreateOwnerBallot(ctx context.Context, electionID, userID string) (*election.Ballot, error) {
	ownerRecord, err := s.OwnerRepo.GetByUser(ctx, userID)
	if err != nil || ownerRecord == nil {
		return nil, ierr.NewError("no owner linked to account").
			WithHint("Voting requires a linked owner record").
			Mark(ierr.ErrNotEligible)
	}
	if ownerRecord.IsArchived() {
		return nil, ierr.NewError("owner archived").
			WithHint("Archived owners may not vote").
			Mark(ierr.ErrNotEligible)
	}

	if existing, err := s.BallotRepo.GetByElectionAndOwner(ctx, electionID, ownerRecord.ID); err == nil && existing != nil {
		return existing, nil
	}

	ballot := &election.Ballot{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BALLOT),
		ElectionID: electionID,
		OwnerID:    ownerRecord.ID,
		Token:      mintToken(),
		IssuedAt:   time.Now().UTC(),
	}
	if err := s.BallotRepo.Create(ctx, ballot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to issue ballot").
			Mark(ierr.ErrDatabase)
	}
	return ballot, nil
}

// RecordVote casts a ballot. Both the public token path and the
// authenticated path funnel through here.
func (s *electionService) RecordVote(ctx context.Context, req RecordVoteRequest) (*election.Vote, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	e, err := s.Get(ctx, req.ElectionID)
	if err != nil {
		return nil, err
	}
	if !e.IsOpen() {
		return nil, ierr.NewError("election not open").
			WithHintf("Votes may be cast only while the election is OPEN, got %s", e.ElectionStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	ballot, err := s.BallotRepo.Get(ctx, req.BallotID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Ballot not found").
			Mark(ierr.ErrNotFound)
	}
	if ballot.ElectionID != e.ID {
		return nil, ierr.NewError("ballot from another election").
			WithHint("The ballot does not belong to this election").
			Mark(ierr.ErrValidation)
	}
	if ballot.IsInvalidated() {
		return nil, ierr.NewError("ballot invalidated").
			WithHint("This ballot has been invalidated").
			Mark(ierr.ErrBallotInvalidated)
	}
	if ballot.HasVoted() {
		return nil, ierr.NewError("ballot already voted").
			WithHint("This ballot has already been cast").
			Mark(ierr.ErrAlreadyVoted)
	}

	writeIn := strings.TrimSpace(req.WriteIn)
	if req.CandidateID != nil {
		candidate, err := s.CandidateRepo.Get(ctx, *req.CandidateID)
		if err != nil || candidate == nil || candidate.ElectionID != e.ID {
			return nil, ierr.NewError("unknown candidate").
				WithHint("The candidate does not belong to this election").
				Mark(ierr.ErrValidation)
		}
	} else if writeIn == "" {
		return nil, ierr.NewError("empty vote").
			WithHint("A vote requires a candidate or a write-in").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()
	vote := &election.Vote{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VOTE),
		ElectionID:  e.ID,
		CandidateID: req.CandidateID,
		BallotID:    ballot.ID,
		WriteIn:     writeIn,
		SubmittedAt: now,
	}
	// One vote per ballot is enforced by the data layer; a concurrent
	// duplicate surfaces here rather than double-applying
	if err := s.VoteRepo.Create(ctx, vote); err != nil {
		return nil, ierr.WithError(err).
			WithHint("This ballot has already been cast").
			Mark(ierr.ErrAlreadyVoted)
	}

	ballotBefore := *ballot
	ballot.VotedAt = &now
	if err := s.BallotRepo.Update(ctx, ballot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to stamp ballot").
			Mark(ierr.ErrDatabase)
	}

	// The ballot change is audited without the choice to keep the vote
	// itself out of the audit trail
	if err := s.audit.Record(ctx, "election.ballot.voted", "ballot", ballot.ID, &ballotBefore, ballot); err != nil {
		return nil, err
	}

	return vote, nil
}

// RecordPublicVote resolves a ballot by token and casts it
func (s *electionService) RecordPublicVote(ctx context.Context, token string, candidateID *string, writeIn string) (*election.Vote, error) {
	ballot, err := s.BallotRepo.GetByToken(ctx, token)
	if err != nil || ballot == nil {
		return nil, ierr.NewError("unknown ballot token").
			WithHint("Ballot not found").
			Mark(ierr.ErrNotFound)
	}
	return s.RecordVote(ctx, RecordVoteRequest{
		ElectionID:  ballot.ElectionID,
		BallotID:    ballot.ID,
		CandidateID: candidateID,
		WriteIn:     writeIn,
	})
}

// InvalidateBallot withdraws an issued ballot
func (s *electionService) InvalidateBallot(ctx context.Context, ballotID string) (*election.Ballot, error) {
	ballot, err := s.BallotRepo.Get(ctx, ballotID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Ballot not found").
			Mark(ierr.ErrNotFound)
	}
	if ballot.IsInvalidated() {
		return ballot, nil
	}

	before := *ballot
	now := time.Now().UTC()
	ballot.InvalidatedAt = &now
	if err := s.BallotRepo.Update(ctx, ballot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to invalidate ballot").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "election.ballot.invalidated", "ballot", ballot.ID, &before, ballot); err != nil {
		return nil, err
	}
	return ballot, nil
}

// ComputeResults counts votes per candidate (zero-vote candidates
// included), descending by count then name, with a synthetic write-in
// bucket aggregating null-candidate votes with non-empty write-in text.
func (s *electionService) ComputeResults(ctx context.Context, electionID string) ([]*election.CandidateResult, error) {
	candidates, err := s.CandidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list candidates").
			Mark(ierr.ErrDatabase)
	}
	votes, err := s.VoteRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list votes").
			Mark(ierr.ErrDatabase)
	}

	counts := make(map[string]int, len(candidates))
	writeInCount := 0
	for _, vote := range votes {
		if vote.CandidateID != nil {
			counts[*vote.CandidateID]++
		} else if strings.TrimSpace(vote.WriteIn) != "" {
			writeInCount++
		}
	}

	results := make([]*election.CandidateResult, 0, len(candidates)+1)
	for _, candidate := range candidates {
		candidateID := candidate.ID
		results = append(results, &election.CandidateResult{
			CandidateID: &candidateID,
			Name:        candidate.Name,
			VoteCount:   counts[candidate.ID],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].VoteCount != results[j].VoteCount {
			return results[i].VoteCount > results[j].VoteCount
		}
		return results[i].Name < results[j].Name
	})

	if writeInCount > 0 {
		results = append(results, &election.CandidateResult{
			Name:      types.WriteInCandidateName,
			VoteCount: writeInCount,
			IsWriteIn: true,
		})
	}

	return results, nil
}

// CalculateStats summarizes turnout for an election
func (s *electionService) CalculateStats(ctx context.Context, electionID string) (*election.Stats, error) {
	ballots, err := s.BallotRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list ballots").
			Mark(ierr.ErrDatabase)
	}

	stats := &election.Stats{
		BallotCount: len(ballots),
	}
	for _, ballot := range ballots {
		if ballot.HasVoted() {
			stats.VotesCast++
		}
	}

	stats.Abstentions = stats.BallotCount - stats.VotesCast
	if stats.Abstentions < 0 {
		stats.Abstentions = 0
	}

	if stats.BallotCount > 0 {
		turnout := decimal.NewFromInt(int64(stats.VotesCast)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(stats.BallotCount)))
		stats.TurnoutPercent = turnout.Round(2).InexactFloat64()
	}

	results, err := s.ComputeResults(ctx, electionID)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		if result.IsWriteIn {
			stats.WriteInCount = result.VoteCount
		}
	}

	return stats, nil
}
