package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/owner"
)

// InMemoryOwnerStore is an in-memory implementation of owner.Repository
type InMemoryOwnerStore struct {
	mu     sync.Mutex
	owners map[string]*owner.Owner
	// links maps owner ID to the set of linked user IDs
	links map[string]map[string]struct{}
}

// NewInMemoryOwnerStore creates a new instance of InMemoryOwnerStore
func NewInMemoryOwnerStore() *InMemoryOwnerStore {
	return &InMemoryOwnerStore{
		owners: make(map[string]*owner.Owner),
		links:  make(map[string]map[string]struct{}),
	}
}

func (r *InMemoryOwnerStore) Create(ctx context.Context, o *owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[o.ID]; exists {
		return errors.New("owner already exists")
	}
	r.owners[o.ID] = o
	return nil
}

func (r *InMemoryOwnerStore) Get(ctx context.Context, id string) (*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.owners[id]
	if !exists {
		return nil, errors.New("owner not found")
	}
	return o, nil
}

func (r *InMemoryOwnerStore) List(ctx context.Context) ([]*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*owner.Owner
	for _, o := range r.owners {
		if !o.IsArchived() {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *InMemoryOwnerStore) Update(ctx context.Context, o *owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[o.ID]; !exists {
		return errors.New("owner not found")
	}
	r.owners[o.ID] = o
	return nil
}

func (r *InMemoryOwnerStore) GetByUser(ctx context.Context, userID string) (*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ownerID, userIDs := range r.links {
		if _, linked := userIDs[userID]; linked {
			if o, exists := r.owners[ownerID]; exists {
				return o, nil
			}
		}
	}
	return nil, errors.New("owner not found")
}

func (r *InMemoryOwnerStore) ListLinkedUsers(ctx context.Context, ownerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []string
	for userID := range r.links[ownerID] {
		result = append(result, userID)
	}
	return result, nil
}

func (r *InMemoryOwnerStore) LinkUser(ctx context.Context, ownerID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.links[ownerID] == nil {
		r.links[ownerID] = make(map[string]struct{})
	}
	r.links[ownerID][userID] = struct{}{}
	return nil
}

// Clear removes all owners and links from the store
func (r *InMemoryOwnerStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners = make(map[string]*owner.Owner)
	r.links = make(map[string]map[string]struct{})
}
