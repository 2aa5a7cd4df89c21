package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/user"
	"github.com/openhoa/openhoa/internal/types"
)

// InMemoryUserStore is an in-memory implementation of user.Repository
type InMemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

// NewInMemoryUserStore creates a new instance of InMemoryUserStore
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (r *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.users[u.ID] = u
	return nil
}

func (r *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserStore) ListByRoles(ctx context.Context, roles []types.Role) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*user.User
	for _, u := range r.users {
		if u.IsActive() && u.RoleSet().HasAny(roles...) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; !exists {
		return errors.New("user not found")
	}
	r.users[u.ID] = u
	return nil
}

// Clear removes all users from the store
func (r *InMemoryUserStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*user.User)
}
