// Package accounts implements account registration, login, and identity
// resolution on top of a pluggable credential store.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/famly-app/identity/internal/common"
	"github.com/famly-app/identity/internal/server/auth"
	"github.com/famly-app/identity/internal/server/config"
)

// Service orchestrates registration, login and identity resolution by
// composing the repository, the secret hasher and the token signer. It holds
// no mutable state; the signing key and token lifetime are fixed at
// construction.
type Service struct {
	repo          Repository
	hasher        auth.Hasher
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewService(repo Repository, hasher auth.Hasher, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		hasher:        hasher,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new account with a freshly hashed secret digest.
// The insert is attempted directly: the store's unique constraint is the
// authoritative duplicate check and surfaces as common.ErrAlreadyExists;
// a read-before-insert would only race with concurrent registrations.
func (s *Service) Register(ctx context.Context, email, secret, name string) (*Account, error) {

	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("error hashing secret: %w", err)
	}

	account := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		SecretDigest: digest,
	}

	account, err = s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

// Login verifies credentials and issues a signed access token. An unknown
// email and a wrong secret fail with the identical error so that account
// existence does not leak through the failure.
func (s *Service) Login(ctx context.Context, email, secret string) (string, error) {

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if !s.hasher.Verify(secret, account.SecretDigest) {
		return "", common.ErrUnauthorized
	}

	token, err := auth.IssueToken(account.ID, account.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// GetByID resolves an account by its id. Absence is reported as
// common.ErrNotFound; whether that is an authorization failure is decided by
// the caller (the access guard treats it as one).
func (s *Service) GetByID(ctx context.Context, id string) (*Account, error) {

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return account, nil
}
