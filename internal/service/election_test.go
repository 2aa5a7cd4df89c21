package service

import (
	"testing"
	"time"

	"github.com/openhoa/openhoa/internal/domain/election"
	"github.com/openhoa/openhoa/internal/domain/owner"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/stretchr/testify/suite"
)

type ElectionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ElectionService
}

func TestElectionService(t *testing.T) {
	suite.Run(t, new(ElectionServiceSuite))
}

func (s *ElectionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewElectionService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ElectionServiceSuite) seedOwner(id string, archived bool) {
	status := types.StatusActive
	if archived {
		status = types.StatusArchived
	}
	s.NoError(s.GetStores().OwnerRepo.Create(s.GetContext(), &owner.Owner{
		ID:   id,
		Name: "Owner " + id,
		Unit: id,
		BaseModel: types.BaseModel{
			Status: status,
		},
	}))
}

func (s *ElectionServiceSuite) seedElection(id string, status types.ElectionStatus) {
	s.NoError(s.GetStores().ElectionRepo.Create(s.GetContext(), &election.Election{
		ID:             id,
		Title:          "Board Election",
		ElectionStatus: status,
		CreatorID:      types.DefaultUserID,
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}))
}

func (s *ElectionServiceSuite) seedCandidate(id, electionID, name string) {
	s.NoError(s.GetStores().CandidateRepo.Create(s.GetContext(), &election.Candidate{
		ID:         id,
		ElectionID: electionID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}))
}

func (s *ElectionServiceSuite) TestGenerateBallotsIsIdempotent() {
	s.seedElection("elec_1", types.ElectionStatusScheduled)
	s.seedOwner("owner_1", false)
	s.seedOwner("owner_2", false)
	s.seedOwner("owner_3", true)

	// Archived owners get no ballot
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", nil, false)
	s.NoError(err)
	s.Len(ballots, 2)

	tokens := map[string]string{}
	for _, b := range ballots {
		s.NotEmpty(b.Token)
		tokens[b.OwnerID] = b.Token
	}

	// A second run re-issues nothing
	again, err := s.service.GenerateBallots(s.GetContext(), "elec_1", nil, false)
	s.NoError(err)
	s.Len(again, 2)
	for _, b := range again {
		s.Equal(tokens[b.OwnerID], b.Token)
	}
}

func (s *ElectionServiceSuite) TestRegenerateMintsNewTokens() {
	s.seedElection("elec_1", types.ElectionStatusScheduled)
	s.seedOwner("owner_1", false)

	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)
	s.Len(ballots, 1)
	oldToken := ballots[0].Token

	ballots, err = s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, true)
	s.NoError(err)
	s.Len(ballots, 1)
	s.NotEqual(oldToken, ballots[0].Token)
}

func (s *ElectionServiceSuite) TestGenerateBallotsReissuesOnlyInvalidatedUnvoted() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedOwner("owner_voted", false)
	s.seedOwner("owner_invalidated", false)

	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_voted", "owner_invalidated"}, false)
	s.NoError(err)
	s.Len(ballots, 2)
	tokens := map[string]string{}
	ids := map[string]string{}
	for _, b := range ballots {
		tokens[b.OwnerID] = b.Token
		ids[b.OwnerID] = b.ID
	}

	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ids["owner_voted"],
		WriteIn:    "Dana Smith",
	})
	s.NoError(err)
	_, err = s.service.InvalidateBallot(s.GetContext(), ids["owner_invalidated"])
	s.NoError(err)

	// Without regenerate, the voted ballot is kept and only the
	// invalidated unvoted one is reissued with a fresh token
	again, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_voted", "owner_invalidated"}, false)
	s.NoError(err)
	s.Len(again, 2)
	for _, b := range again {
		switch b.OwnerID {
		case "owner_voted":
			s.Equal(tokens["owner_voted"], b.Token)
			s.True(b.HasVoted())
		case "owner_invalidated":
			s.NotEqual(tokens["owner_invalidated"], b.Token)
			s.False(b.IsInvalidated())
		}
	}
}

func (s *ElectionServiceSuite) TestRecordVoteRequiresOpenElection() {
	s.seedElection("elec_1", types.ElectionStatusScheduled)
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)

	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ballots[0].ID,
		WriteIn:    "Dana Smith",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ElectionServiceSuite) TestOneVotePerBallot() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedCandidate("cand_1", "elec_1", "Alice Nguyen")
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)
	ballotID := ballots[0].ID

	candidateID := "cand_1"
	vote, err := s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID:  "elec_1",
		BallotID:    ballotID,
		CandidateID: &candidateID,
	})
	s.NoError(err)
	s.NotNil(vote)

	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID:  "elec_1",
		BallotID:    ballotID,
		CandidateID: &candidateID,
	})
	s.Error(err)
	s.True(ierr.IsAlreadyVoted(err))
}

func (s *ElectionServiceSuite) TestInvalidatedBallotCannotVote() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)

	_, err = s.service.InvalidateBallot(s.GetContext(), ballots[0].ID)
	s.NoError(err)

	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ballots[0].ID,
		WriteIn:    "Dana Smith",
	})
	s.Error(err)
	s.True(ierr.IsBallotInvalidated(err))
}

func (s *ElectionServiceSuite) TestVoteValidatesCandidateElection() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedElection("elec_2", types.ElectionStatusOpen)
	s.seedCandidate("cand_other", "elec_2", "Bob Lee")
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)

	otherCandidate := "cand_other"
	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID:  "elec_1",
		BallotID:    ballots[0].ID,
		CandidateID: &otherCandidate,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// A vote needs a candidate or a non-blank write-in
	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ballots[0].ID,
		WriteIn:    "   ",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ElectionServiceSuite) TestPublicVoteByToken() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)

	vote, err := s.service.RecordPublicVote(s.GetContext(), ballots[0].Token, nil, "  Dana Smith  ")
	s.NoError(err)
	s.Equal("Dana Smith", vote.WriteIn)

	_, err = s.service.RecordPublicVote(s.GetContext(), "no-such-token", nil, "Dana Smith")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ElectionServiceSuite) TestOwnerBallotRejectsArchivedOwner() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedOwner("owner_1", true)
	s.NoError(s.GetStores().OwnerRepo.LinkUser(s.GetContext(), "owner_1", "user_1"))

	_, err := s.service.GetOrCreateOwnerBallot(s.GetContext(), "elec_1", "user_1")
	s.Error(err)
	s.True(ierr.IsNotEligible(err))

	_, err = s.service.GetOrCreateOwnerBallot(s.GetContext(), "elec_1", "user_unlinked")
	s.Error(err)
	s.True(ierr.IsNotEligible(err))
}

func (s *ElectionServiceSuite) TestResultsOrderingAndWriteInBucket() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedCandidate("cand_a", "elec_1", "Alice Nguyen")
	s.seedCandidate("cand_b", "elec_1", "Bob Lee")
	s.seedCandidate("cand_z", "elec_1", "Zoe Park")

	for i, ownerID := range []string{"owner_1", "owner_2", "owner_3", "owner_4"} {
		s.seedOwner(ownerID, false)
		ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{ownerID}, false)
		s.NoError(err)

		req := RecordVoteRequest{ElectionID: "elec_1", BallotID: ballots[0].ID}
		switch i {
		case 0, 1:
			candidateID := "cand_b"
			req.CandidateID = &candidateID
		case 2:
			candidateID := "cand_a"
			req.CandidateID = &candidateID
		case 3:
			req.WriteIn = "Dana Smith"
		}
		_, err = s.service.RecordVote(s.GetContext(), req)
		s.NoError(err)
	}

	results, err := s.service.ComputeResults(s.GetContext(), "elec_1")
	s.NoError(err)
	s.Len(results, 4)

	// Descending by count, name ascending on ties; zero-vote candidates
	// stay in the list; the write-in bucket trails
	s.Equal("Bob Lee", results[0].Name)
	s.Equal(2, results[0].VoteCount)
	s.Equal("Alice Nguyen", results[1].Name)
	s.Equal(1, results[1].VoteCount)
	s.Equal("Zoe Park", results[2].Name)
	s.Equal(0, results[2].VoteCount)
	s.Equal(types.WriteInCandidateName, results[3].Name)
	s.True(results[3].IsWriteIn)
	s.Equal(1, results[3].VoteCount)

	total := 0
	for _, r := range results {
		total += r.VoteCount
	}
	s.Equal(4, total)
}

func (s *ElectionServiceSuite) TestStatsTurnoutRounding() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	for _, ownerID := range []string{"owner_1", "owner_2", "owner_3"} {
		s.seedOwner(ownerID, false)
	}
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", nil, false)
	s.NoError(err)
	s.Len(ballots, 3)

	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ballots[0].ID,
		WriteIn:    "Dana Smith",
	})
	s.NoError(err)

	stats, err := s.service.CalculateStats(s.GetContext(), "elec_1")
	s.NoError(err)
	s.Equal(3, stats.BallotCount)
	s.Equal(1, stats.VotesCast)
	s.Equal(2, stats.Abstentions)
	s.InDelta(33.33, stats.TurnoutPercent, 0.001)
	s.Equal(1, stats.WriteInCount)
}

func (s *ElectionServiceSuite) TestStatsOnEmptyElection() {
	s.seedElection("elec_1", types.ElectionStatusOpen)

	stats, err := s.service.CalculateStats(s.GetContext(), "elec_1")
	s.NoError(err)
	s.Equal(0, stats.BallotCount)
	s.Equal(0, stats.VotesCast)
	s.Equal(0, stats.Abstentions)
	s.Equal(0.0, stats.TurnoutPercent)
}

func (s *ElectionServiceSuite) TestVoteStampsBallotAndAuditsWithoutChoice() {
	s.seedElection("elec_1", types.ElectionStatusOpen)
	s.seedOwner("owner_1", false)
	ballots, err := s.service.GenerateBallots(s.GetContext(), "elec_1", []string{"owner_1"}, false)
	s.NoError(err)

	auditBefore := s.GetStores().AuditLogRepo.Count()
	_, err = s.service.RecordVote(s.GetContext(), RecordVoteRequest{
		ElectionID: "elec_1",
		BallotID:   ballots[0].ID,
		WriteIn:    "Dana Smith",
	})
	s.NoError(err)

	ballot, err := s.GetStores().BallotRepo.Get(s.GetContext(), ballots[0].ID)
	s.NoError(err)
	s.True(ballot.HasVoted())

	// The ballot flip is audited; the choice never appears in the trail
	s.Equal(auditBefore+1, s.GetStores().AuditLogRepo.Count())
	logs, err := s.GetStores().AuditLogRepo.ListByTarget(s.GetContext(), "ballot", ballot.ID)
	s.NoError(err)
	s.Len(logs, 1)
	s.NotContains(logs[0].After, "Dana Smith")
}
