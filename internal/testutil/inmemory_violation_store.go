package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/violation"
)

// InMemoryViolationStore is an in-memory implementation of
// violation.Repository.
type InMemoryViolationStore struct {
	mu         sync.Mutex
	violations map[string]*violation.Violation
}

// NewInMemoryViolationStore creates a new instance of InMemoryViolationStore
func NewInMemoryViolationStore() *InMemoryViolationStore {
	return &InMemoryViolationStore{
		violations: make(map[string]*violation.Violation),
	}
}

func (r *InMemoryViolationStore) Create(ctx context.Context, v *violation.Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.violations[v.ID]; exists {
		return errors.New("violation already exists")
	}
	copied := *v
	r.violations[v.ID] = &copied
	return nil
}

func (r *InMemoryViolationStore) Get(ctx context.Context, id string) (*violation.Violation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.violations[id]
	if !exists {
		return nil, errors.New("violation not found")
	}
	copied := *v
	return &copied, nil
}

func (r *InMemoryViolationStore) Update(ctx context.Context, v *violation.Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.violations[v.ID]; !exists {
		return errors.New("violation not found")
	}
	copied := *v
	r.violations[v.ID] = &copied
	return nil
}

func (r *InMemoryViolationStore) ListByOwner(ctx context.Context, ownerID string) ([]*violation.Violation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*violation.Violation
	for _, v := range r.violations {
		if v.OwnerID == ownerID {
			copied := *v
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all violations from the store
func (r *InMemoryViolationStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.violations = make(map[string]*violation.Violation)
}

// InMemoryNoticeStore is an in-memory implementation of
// violation.NoticeRepository. Notices are immutable; only Create and
// ordered listing exist.
type InMemoryNoticeStore struct {
	mu      sync.Mutex
	notices []*violation.Notice
}

// NewInMemoryNoticeStore creates a new instance of InMemoryNoticeStore
func NewInMemoryNoticeStore() *InMemoryNoticeStore {
	return &InMemoryNoticeStore{}
}

func (r *InMemoryNoticeStore) Create(ctx context.Context, n *violation.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *n
	r.notices = append(r.notices, &copied)
	return nil
}

func (r *InMemoryNoticeStore) ListByViolation(ctx context.Context, violationID string) ([]*violation.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*violation.Notice
	for _, n := range r.notices {
		if n.ViolationID == violationID {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all notices from the store
func (r *InMemoryNoticeStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// InMemoryAppealStore is an in-memory implementation of
// violation.AppealRepository.
type InMemoryAppealStore struct {
	mu      sync.Mutex
	appeals map[string]*violation.Appeal
}

// NewInMemoryAppealStore creates a new instance of InMemoryAppealStore
func NewInMemoryAppealStore() *InMemoryAppealStore {
	return &InMemoryAppealStore{
		appeals: make(map[string]*violation.Appeal),
	}
}

func (r *InMemoryAppealStore) Create(ctx context.Context, a *violation.Appeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appeals[a.ID]; exists {
		return errors.New("appeal already exists")
	}
	copied := *a
	r.appeals[a.ID] = &copied
	return nil
}

func (r *InMemoryAppealStore) Get(ctx context.Context, id string) (*violation.Appeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.appeals[id]
	if !exists {
		return nil, errors.New("appeal not found")
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryAppealStore) Update(ctx context.Context, a *violation.Appeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appeals[a.ID]; !exists {
		return errors.New("appeal not found")
	}
	copied := *a
	r.appeals[a.ID] = &copied
	return nil
}

func (r *InMemoryAppealStore) ListByViolation(ctx context.Context, violationID string) ([]*violation.Appeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*violation.Appeal
	for _, a := range r.appeals {
		if a.ViolationID == violationID {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all appeals from the store
func (r *InMemoryAppealStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appeals = make(map[string]*violation.Appeal)
}
