package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/famly-app/identity/internal/common"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// development. It enforces the same email-uniqueness contract as the
// Postgres implementation.
type InMemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]*Account
	byID    map[string]*Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byEmail: make(map[string]*Account),
		byID:    make(map[string]*Account),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrAlreadyExists
	}

	stored := *account
	stored.CreatedAt = time.Now()

	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

// Delete removes an account. It is not part of the Repository contract;
// account removal is an administrative path that only exists here so tests
// can simulate a token outliving its account.
func (r *InMemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byEmail, account.Email)
	delete(r.byID, id)
}
