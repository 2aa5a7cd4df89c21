package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/ledger"
)

// InMemoryLedgerStore is an in-memory implementation of
// ledger.Repository. Entries are append-only and listed in creation
// order, ties broken by insertion order.
type InMemoryLedgerStore struct {
	mu      sync.Mutex
	entries []*ledger.Entry
}

// NewInMemoryLedgerStore creates a new instance of InMemoryLedgerStore
func NewInMemoryLedgerStore() *InMemoryLedgerStore {
	return &InMemoryLedgerStore{}
}

func (r *InMemoryLedgerStore) Create(ctx context.Context, entry *ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.ID == entry.ID {
			return errors.New("entry already exists")
		}
	}
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *InMemoryLedgerStore) Get(ctx context.Context, id string) (*ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, errors.New("entry not found")
}

func (r *InMemoryLedgerStore) ListByOwner(ctx context.Context, ownerID string) ([]*ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*ledger.Entry
	for _, entry := range r.entries {
		if entry.OwnerID == ownerID {
			copied := *entry
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryLedgerStore) GetByOwnerAndMemo(ctx context.Context, ownerID, memo string) (*ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.OwnerID == ownerID && entry.Memo == memo {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, errors.New("entry not found")
}

// Clear removes all entries from the store
func (r *InMemoryLedgerStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// InMemoryFineScheduleStore is an in-memory implementation of
// ledger.FineScheduleRepository.
type InMemoryFineScheduleStore struct {
	mu        sync.Mutex
	schedules map[string]*ledger.FineSchedule
}

// NewInMemoryFineScheduleStore creates a new instance of InMemoryFineScheduleStore
func NewInMemoryFineScheduleStore() *InMemoryFineScheduleStore {
	return &InMemoryFineScheduleStore{
		schedules: make(map[string]*ledger.FineSchedule),
	}
}

func (r *InMemoryFineScheduleStore) Create(ctx context.Context, schedule *ledger.FineSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[schedule.ID]; exists {
		return errors.New("fine schedule already exists")
	}
	copied := *schedule
	r.schedules[schedule.ID] = &copied
	return nil
}

func (r *InMemoryFineScheduleStore) Get(ctx context.Context, id string) (*ledger.FineSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule, exists := r.schedules[id]
	if !exists {
		return nil, errors.New("fine schedule not found")
	}
	copied := *schedule
	return &copied, nil
}

// Clear removes all fine schedules from the store
func (r *InMemoryFineScheduleStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules = make(map[string]*ledger.FineSchedule)
}
