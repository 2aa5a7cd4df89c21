package service

import (
	"errors"
	"testing"
	"time"

	"github.com/openhoa/openhoa/internal/domain/arc"
	"github.com/openhoa/openhoa/internal/domain/owner"
	"github.com/openhoa/openhoa/internal/domain/user"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/stretchr/testify/suite"
)

type ARCServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ARCService
}

func TestARCService(t *testing.T) {
	suite.Run(t, new(ARCServiceSuite))
}

func (s *ARCServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewARCService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ARCServiceSuite) seedReviewer(id string) {
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), &user.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  "Reviewer " + id,
		Roles: []types.Role{types.RoleARC},
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}))
}

func (s *ARCServiceSuite) seedOwner(id, email string) {
	s.NoError(s.GetStores().OwnerRepo.Create(s.GetContext(), &owner.Owner{
		ID:    id,
		Name:  "Chris Yu",
		Email: email,
		Unit:  "7A",
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}))
}

func (s *ARCServiceSuite) seedRequest(id string, status types.ARCStatus) *arc.Request {
	req := &arc.Request{
		ID:          id,
		OwnerID:     "owner_1",
		SubmitterID: "user_submitter",
		Title:       "Rear deck extension",
		ProjectType: "Deck",
		Description: "Extend existing deck by 4 feet",
		ARCStatus:   status,
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}
	s.NoError(s.GetStores().ARCRepo.Create(s.GetContext(), req))
	return req
}

func (s *ARCServiceSuite) TestTransitionNormalizesTarget() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusDraft)

	got, err := s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    "  submitted ",
	})
	s.NoError(err)
	s.Equal(types.ARCStatusSubmitted, got.ARCStatus)
	s.NotNil(got.SubmittedAt)

	got, err = s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    "in review",
	})
	s.NoError(err)
	s.Equal(types.ARCStatusInReview, got.ARCStatus)
}

func (s *ARCServiceSuite) TestTransitionRejectsUnknownAndIllegal() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusDraft)

	_, err := s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    "SIDEWAYS",
	})
	s.Error(err)
	s.True(ierr.IsInvalidState(err))

	_, err = s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    string(types.ARCStatusCompleted),
	})
	s.Error(err)
	s.True(ierr.IsIllegalTransition(err))
}

func (s *ARCServiceSuite) TestDecisionStatusesAreReviewerDriven() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusInReview)

	for _, target := range []string{"PASSED", "FAILED"} {
		_, err := s.service.Transition(s.GetContext(), TransitionARCRequest{
			RequestID: "arc_1",
			Target:    target,
		})
		s.Error(err)
		s.True(ierr.IsIllegalTransition(err))
	}
}

func (s *ARCServiceSuite) TestMilestoneStamping() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusInReview)

	got, err := s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    string(types.ARCStatusApproved),
	})
	s.NoError(err)
	s.NotNil(got.DecisionAt)
	s.NotNil(got.DecisionBy)
	firstDecision := *got.DecisionAt

	got, err = s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    string(types.ARCStatusCompleted),
	})
	s.NoError(err)
	s.NotNil(got.CompletedAt)
	// The decision stamp is written exactly once
	s.True(got.DecisionAt.Equal(firstDecision))

	got, err = s.service.Transition(s.GetContext(), TransitionARCRequest{
		RequestID: "arc_1",
		Target:    string(types.ARCStatusArchived),
	})
	s.NoError(err)
	s.NotNil(got.ArchivedAt)
	s.Equal(types.StatusArchived, got.Status)
}

func (s *ARCServiceSuite) TestSubmitReviewRequiresEligibility() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusSubmitted)
	s.seedReviewer("user_arc_1")

	ctx := testutil.ContextAs("user_random", types.RoleOwner)
	_, err := s.service.SubmitReview(ctx, SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionPass,
	})
	s.Error(err)
	s.True(ierr.IsNotEligible(err))
}

func (s *ARCServiceSuite) TestFirstReviewMovesSubmittedIntoReview() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusSubmitted)
	s.seedReviewer("user_arc_1")
	s.seedReviewer("user_arc_2")
	s.seedReviewer("user_arc_3")

	ctx := testutil.ContextAs("user_arc_1", types.RoleARC)
	got, err := s.service.SubmitReview(ctx, SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionPass,
	})
	s.NoError(err)
	// One pass of three eligible reviewers is below threshold
	s.Equal(types.ARCStatusInReview, got.ARCStatus)
}

func (s *ARCServiceSuite) TestMajorityPassDecides() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusSubmitted)
	s.seedReviewer("user_arc_1")
	s.seedReviewer("user_arc_2")
	s.seedReviewer("user_arc_3")

	_, err := s.service.SubmitReview(testutil.ContextAs("user_arc_1", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionPass,
	})
	s.NoError(err)

	// Second pass reaches ceil(3/2) = 2
	got, err := s.service.SubmitReview(testutil.ContextAs("user_arc_2", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionPass,
	})
	s.NoError(err)
	s.Equal(types.ARCStatusPassed, got.ARCStatus)
	s.NotNil(got.DecisionAt)
}

func (s *ARCServiceSuite) TestFailThresholdIsAsymmetric() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusSubmitted)
	for _, id := range []string{"user_arc_1", "user_arc_2", "user_arc_3", "user_arc_4"} {
		s.seedReviewer(id)
	}

	// Two fails of four eligible is not enough: threshold is 4/2+1 = 3
	_, err := s.service.SubmitReview(testutil.ContextAs("user_arc_1", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionFail,
	})
	s.NoError(err)
	got, err := s.service.SubmitReview(testutil.ContextAs("user_arc_2", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionFail,
	})
	s.NoError(err)
	s.Equal(types.ARCStatusInReview, got.ARCStatus)

	got, err = s.service.SubmitReview(testutil.ContextAs("user_arc_3", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionFail,
	})
	s.NoError(err)
	s.Equal(types.ARCStatusFailed, got.ARCStatus)
}

func (s *ARCServiceSuite) TestReviewerMayChangeVote() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusSubmitted)
	s.seedReviewer("user_arc_1")
	s.seedReviewer("user_arc_2")
	s.seedReviewer("user_arc_3")

	ctx := testutil.ContextAs("user_arc_1", types.RoleARC)
	_, err := s.service.SubmitReview(ctx, SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionFail,
	})
	s.NoError(err)

	_, err = s.service.SubmitReview(ctx, SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionPass,
		Notes:     "revised plans address the setback",
	})
	s.NoError(err)

	reviews, err := s.GetStores().ARCReviewRepo.ListByRequest(s.GetContext(), "arc_1")
	s.NoError(err)
	s.Len(reviews, 1)
	s.Equal(types.ReviewDecisionPass, reviews[0].Decision)
}

func (s *ARCServiceSuite) TestSubmitReviewRejectsDecidedRequest() {
	s.seedOwner("owner_1", "chris@example.com")
	s.seedRequest("arc_1", types.ARCStatusPassed)
	s.seedReviewer("user_arc_1")

	_, err := s.service.SubmitReview(testutil.ContextAs("user_arc_1", types.RoleARC), SubmitReviewRequest{
		RequestID: "arc_1",
		Decision:  types.ReviewDecisionFail,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ARCServiceSuite) TestComputeReviewTally() {
	mk := func(decisions ...types.ReviewDecision) []*arc.Review {
		var reviews []*arc.Review
		for _, d := range decisions {
			reviews = append(reviews, &arc.Review{Decision: d})
		}
		return reviews
	}

	cases := []struct {
		name     string
		reviews  []*arc.Review
		eligible int
		outcome  types.ARCStatus
	}{
		{"no reviewers configured", mk(types.ReviewDecisionPass), 0, types.ARCStatusInReview},
		{"pass at ceil half", mk(types.ReviewDecisionPass, types.ReviewDecisionPass), 3, types.ARCStatusPassed},
		{"single pass below threshold", mk(types.ReviewDecisionPass), 3, types.ARCStatusInReview},
		{"two fails of four pending", mk(types.ReviewDecisionFail, types.ReviewDecisionFail), 4, types.ARCStatusInReview},
		{"three fails of four fail", mk(types.ReviewDecisionFail, types.ReviewDecisionFail, types.ReviewDecisionFail), 4, types.ARCStatusFailed},
		{"pass wins at two of four", mk(types.ReviewDecisionPass, types.ReviewDecisionPass), 4, types.ARCStatusPassed},
	}

	for _, tc := range cases {
		tally := ComputeReviewTally(tc.reviews, tc.eligible)
		s.Equal(tc.outcome, tally.Outcome, tc.name)
	}
}

func (s *ARCServiceSuite) TestNotifyDecisionIsOneShot() {
	s.seedOwner("owner_1", "chris@example.com")
	req := s.seedRequest("arc_1", types.ARCStatusPassed)
	now := time.Now().UTC()
	req.DecisionAt = &now
	s.NoError(s.GetStores().ARCRepo.Update(s.GetContext(), req))

	s.NoError(s.service.NotifyDecision(s.GetContext(), "arc_1"))
	s.Len(s.GetEmailSender().Messages(), 1)
	s.Equal("chris@example.com", s.GetEmailSender().Messages()[0].To)
	s.Contains(s.GetEmailSender().Messages()[0].Subject, "Rear deck extension")

	// Resending the same decision is a no-op
	s.NoError(s.service.NotifyDecision(s.GetContext(), "arc_1"))
	s.Len(s.GetEmailSender().Messages(), 1)
}

func (s *ARCServiceSuite) TestNotifyDecisionRetriesAfterEmailFailure() {
	s.seedOwner("owner_1", "chris@example.com")
	req := s.seedRequest("arc_1", types.ARCStatusFailed)
	now := time.Now().UTC()
	req.DecisionAt = &now
	s.NoError(s.GetStores().ARCRepo.Update(s.GetContext(), req))

	s.GetEmailSender().FailWith = errors.New("smtp down")
	s.NoError(s.service.NotifyDecision(s.GetContext(), "arc_1"))
	s.Empty(s.GetEmailSender().Messages())

	// The guard stayed clear, so a later attempt delivers
	s.GetEmailSender().FailWith = nil
	s.NoError(s.service.NotifyDecision(s.GetContext(), "arc_1"))
	s.Len(s.GetEmailSender().Messages(), 1)
}

func (s *ARCServiceSuite) TestResolveConditionIsIdempotent() {
	s.NoError(s.GetStores().ARCConditionRepo.Create(s.GetContext(), &arc.Condition{
		ID:              "cond_1",
		RequestID:       "arc_1",
		Description:     "Use association-approved stain color",
		ConditionStatus: types.ConditionStatusOpen,
		CreatedAt:       time.Now().UTC(),
	}))

	resolved, err := s.service.ResolveCondition(s.GetContext(), "cond_1")
	s.NoError(err)
	s.Equal(types.ConditionStatusResolved, resolved.ConditionStatus)
	s.NotNil(resolved.ResolvedAt)
	firstResolved := *resolved.ResolvedAt

	again, err := s.service.ResolveCondition(s.GetContext(), "cond_1")
	s.NoError(err)
	s.True(again.ResolvedAt.Equal(firstResolved))
}
