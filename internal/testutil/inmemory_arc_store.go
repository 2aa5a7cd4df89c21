package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/arc"
)

// InMemoryARCStore is an in-memory implementation of arc.Repository
type InMemoryARCStore struct {
	mu       sync.Mutex
	requests map[string]*arc.Request
}

// NewInMemoryARCStore creates a new instance of InMemoryARCStore
func NewInMemoryARCStore() *InMemoryARCStore {
	return &InMemoryARCStore{
		requests: make(map[string]*arc.Request),
	}
}

func (r *InMemoryARCStore) Create(ctx context.Context, req *arc.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[req.ID]; exists {
		return errors.New("request already exists")
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *InMemoryARCStore) Get(ctx context.Context, id string) (*arc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, errors.New("request not found")
	}
	copied := *req
	return &copied, nil
}

func (r *InMemoryARCStore) Update(ctx context.Context, req *arc.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[req.ID]; !exists {
		return errors.New("request not found")
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *InMemoryARCStore) ListByOwner(ctx context.Context, ownerID string) ([]*arc.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*arc.Request
	for _, req := range r.requests {
		if req.OwnerID == ownerID {
			copied := *req
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all requests from the store
func (r *InMemoryARCStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = make(map[string]*arc.Request)
}

// InMemoryARCReviewStore is an in-memory implementation of
// arc.ReviewRepository with upsert semantics keyed on
// (request, reviewer).
type InMemoryARCReviewStore struct {
	mu      sync.Mutex
	reviews map[string]*arc.Review
}

// NewInMemoryARCReviewStore creates a new instance of InMemoryARCReviewStore
func NewInMemoryARCReviewStore() *InMemoryARCReviewStore {
	return &InMemoryARCReviewStore{
		reviews: make(map[string]*arc.Review),
	}
}

func reviewKey(requestID, reviewerID string) string {
	return requestID + "/" + reviewerID
}

func (r *InMemoryARCReviewStore) Upsert(ctx context.Context, review *arc.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *review
	r.reviews[reviewKey(review.RequestID, review.ReviewerID)] = &copied
	return nil
}

func (r *InMemoryARCReviewStore) GetByRequestAndReviewer(ctx context.Context, requestID, reviewerID string) (*arc.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, exists := r.reviews[reviewKey(requestID, reviewerID)]
	if !exists {
		return nil, errors.New("review not found")
	}
	copied := *review
	return &copied, nil
}

func (r *InMemoryARCReviewStore) ListByRequest(ctx context.Context, requestID string) ([]*arc.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*arc.Review
	for _, review := range r.reviews {
		if review.RequestID == requestID {
			copied := *review
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all reviews from the store
func (r *InMemoryARCReviewStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = make(map[string]*arc.Review)
}

// InMemoryARCConditionStore is an in-memory implementation of
// arc.ConditionRepository.
type InMemoryARCConditionStore struct {
	mu         sync.Mutex
	conditions map[string]*arc.Condition
}

// NewInMemoryARCConditionStore creates a new instance of InMemoryARCConditionStore
func NewInMemoryARCConditionStore() *InMemoryARCConditionStore {
	return &InMemoryARCConditionStore{
		conditions: make(map[string]*arc.Condition),
	}
}

func (r *InMemoryARCConditionStore) Create(ctx context.Context, c *arc.Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conditions[c.ID]; exists {
		return errors.New("condition already exists")
	}
	copied := *c
	r.conditions[c.ID] = &copied
	return nil
}

func (r *InMemoryARCConditionStore) Get(ctx context.Context, id string) (*arc.Condition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.conditions[id]
	if !exists {
		return nil, errors.New("condition not found")
	}
	copied := *c
	return &copied, nil
}

func (r *InMemoryARCConditionStore) Update(ctx context.Context, c *arc.Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conditions[c.ID]; !exists {
		return errors.New("condition not found")
	}
	copied := *c
	r.conditions[c.ID] = &copied
	return nil
}

func (r *InMemoryARCConditionStore) ListByRequest(ctx context.Context, requestID string) ([]*arc.Condition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*arc.Condition
	for _, c := range r.conditions {
		if c.RequestID == requestID {
			copied := *c
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all conditions from the store
func (r *InMemoryARCConditionStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions = make(map[string]*arc.Condition)
}
