package accounts

import "context"

// Repository is the persistence boundary for accounts.
//
// The store is the sole enforcer of email uniqueness: Create reports a
// duplicate email as common.ErrAlreadyExists and callers must not rely on a
// read-before-insert existence check. Lookups report absence as
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}
