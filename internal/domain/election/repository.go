package election

import "context"

// Repository defines the interface for election persistence operations
type Repository interface {
	// Create creates a new election
	Create(ctx context.Context, election *Election) error

	// Get retrieves an election by ID
	Get(ctx context.Context, id string) (*Election, error)

	// Update updates an existing election
	Update(ctx context.Context, election *Election) error

	// List retrieves all elections
	List(ctx context.Context) ([]*Election, error)
}

// CandidateRepository persists candidates
type CandidateRepository interface {
	// Create creates a new candidate
	Create(ctx context.Context, candidate *Candidate) error

	// Get retrieves a candidate by ID
	Get(ctx context.Context, id string) (*Candidate, error)

	// ListByElection retrieves candidates for an election
	ListByElection(ctx context.Context, electionID string) ([]*Candidate, error)
}

// BallotRepository persists ballots, unique per (election, owner)
type BallotRepository interface {
	// Create creates a new ballot
	Create(ctx context.Context, ballot *Ballot) error

	// Get retrieves a ballot by ID
	Get(ctx context.Context, id string) (*Ballot, error)

	// GetByToken retrieves a ballot by its voting token
	GetByToken(ctx context.Context, token string) (*Ballot, error)

	// GetByElectionAndOwner retrieves an owner's ballot for an election
	GetByElectionAndOwner(ctx context.Context, electionID, ownerID string) (*Ballot, error)

	// Update updates an existing ballot
	Update(ctx context.Context, ballot *Ballot) error

	// ListByElection retrieves all ballots issued for an election
	ListByElection(ctx context.Context, electionID string) ([]*Ballot, error)
}

// VoteRepository persists votes, unique per ballot
type VoteRepository interface {
	// Create creates a new vote; a second vote for the same ballot must
	// fail at the data layer
	Create(ctx context.Context, vote *Vote) error

	// GetByBallot retrieves the vote cast with a ballot, if any
	GetByBallot(ctx context.Context, ballotID string) (*Vote, error)

	// ListByElection retrieves all votes cast in an election
	ListByElection(ctx context.Context, electionID string) ([]*Vote, error)
}
