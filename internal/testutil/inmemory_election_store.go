package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/election"
)

// InMemoryElectionStore is an in-memory implementation of
// election.Repository.
type InMemoryElectionStore struct {
	mu        sync.Mutex
	elections map[string]*election.Election
}

// NewInMemoryElectionStore creates a new instance of InMemoryElectionStore
func NewInMemoryElectionStore() *InMemoryElectionStore {
	return &InMemoryElectionStore{
		elections: make(map[string]*election.Election),
	}
}

func (r *InMemoryElectionStore) Create(ctx context.Context, e *election.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.elections[e.ID]; exists {
		return errors.New("election already exists")
	}
	copied := *e
	r.elections[e.ID] = &copied
	return nil
}

func (r *InMemoryElectionStore) Get(ctx context.Context, id string) (*election.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.elections[id]
	if !exists {
		return nil, errors.New("election not found")
	}
	copied := *e
	return &copied, nil
}

func (r *InMemoryElectionStore) Update(ctx context.Context, e *election.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.elections[e.ID]; !exists {
		return errors.New("election not found")
	}
	copied := *e
	r.elections[e.ID] = &copied
	return nil
}

func (r *InMemoryElectionStore) List(ctx context.Context) ([]*election.Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*election.Election
	for _, e := range r.elections {
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

// Clear removes all elections from the store
func (r *InMemoryElectionStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elections = make(map[string]*election.Election)
}

// InMemoryCandidateStore is an in-memory implementation of
// election.CandidateRepository.
type InMemoryCandidateStore struct {
	mu         sync.Mutex
	candidates []*election.Candidate
}

// NewInMemoryCandidateStore creates a new instance of InMemoryCandidateStore
func NewInMemoryCandidateStore() *InMemoryCandidateStore {
	return &InMemoryCandidateStore{}
}

func (r *InMemoryCandidateStore) Create(ctx context.Context, c *election.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *c
	r.candidates = append(r.candidates, &copied)
	return nil
}

func (r *InMemoryCandidateStore) Get(ctx context.Context, id string) (*election.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.candidates {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, errors.New("candidate not found")
}

func (r *InMemoryCandidateStore) ListByElection(ctx context.Context, electionID string) ([]*election.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*election.Candidate
	for _, c := range r.candidates {
		if c.ElectionID == electionID {
			copied := *c
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all candidates from the store
func (r *InMemoryCandidateStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = nil
}

// InMemoryBallotStore is an in-memory implementation of
// election.BallotRepository enforcing ballot uniqueness per
// (election, owner).
type InMemoryBallotStore struct {
	mu      sync.Mutex
	ballots map[string]*election.Ballot
}

// NewInMemoryBallotStore creates a new instance of InMemoryBallotStore
func NewInMemoryBallotStore() *InMemoryBallotStore {
	return &InMemoryBallotStore{
		ballots: make(map[string]*election.Ballot),
	}
}

func (r *InMemoryBallotStore) Create(ctx context.Context, b *election.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ballots {
		if existing.ElectionID == b.ElectionID && existing.OwnerID == b.OwnerID {
			return errors.New("ballot already issued for owner")
		}
	}
	copied := *b
	r.ballots[b.ID] = &copied
	return nil
}

func (r *InMemoryBallotStore) Get(ctx context.Context, id string) (*election.Ballot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.ballots[id]
	if !exists {
		return nil, errors.New("ballot not found")
	}
	copied := *b
	return &copied, nil
}

func (r *InMemoryBallotStore) GetByToken(ctx context.Context, token string) (*election.Ballot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.ballots {
		if b.Token == token {
			copied := *b
			return &copied, nil
		}
	}
	return nil, errors.New("ballot not found")
}

func (r *InMemoryBallotStore) GetByElectionAndOwner(ctx context.Context, electionID, ownerID string) (*election.Ballot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.ballots {
		if b.ElectionID == electionID && b.OwnerID == ownerID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, errors.New("ballot not found")
}

func (r *InMemoryBallotStore) Update(ctx context.Context, b *election.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ballots[b.ID]; !exists {
		return errors.New("ballot not found")
	}
	copied := *b
	r.ballots[b.ID] = &copied
	return nil
}

func (r *InMemoryBallotStore) ListByElection(ctx context.Context, electionID string) ([]*election.Ballot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*election.Ballot
	for _, b := range r.ballots {
		if b.ElectionID == electionID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all ballots from the store
func (r *InMemoryBallotStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ballots = make(map[string]*election.Ballot)
}

// InMemoryVoteStore is an in-memory implementation of
// election.VoteRepository enforcing one vote per ballot.
type InMemoryVoteStore struct {
	mu    sync.Mutex
	votes map[string]*election.Vote
}

// NewInMemoryVoteStore creates a new instance of InMemoryVoteStore
func NewInMemoryVoteStore() *InMemoryVoteStore {
	return &InMemoryVoteStore{
		votes: make(map[string]*election.Vote),
	}
}

func (r *InMemoryVoteStore) Create(ctx context.Context, v *election.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.votes[v.BallotID]; exists {
		return errors.New("ballot already voted")
	}
	copied := *v
	r.votes[v.BallotID] = &copied
	return nil
}

func (r *InMemoryVoteStore) GetByBallot(ctx context.Context, ballotID string) (*election.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.votes[ballotID]
	if !exists {
		return nil, errors.New("vote not found")
	}
	copied := *v
	return &copied, nil
}

func (r *InMemoryVoteStore) ListByElection(ctx context.Context, electionID string) ([]*election.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*election.Vote
	for _, v := range r.votes {
		if v.ElectionID == electionID {
			copied := *v
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all votes from the store
func (r *InMemoryVoteStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes = make(map[string]*election.Vote)
}
