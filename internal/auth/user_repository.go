package auth

import (
	"context"
	"errors"
)

// UserRepository defines operations for user persistence and retrieval.
// The MongoDB implementation is the production backend; the in-memory one
// backs the handler tests.
type UserRepository interface {
	// Create inserts a new account. The caller passes a bcrypt-hashed
	// password, never plaintext. Implementations must enforce unique
	// emails and return ErrUserExists on conflict.
	Create(ctx context.Context, email, name, passwordHash string, role Role) (*User, error)

	// GetByEmail returns the account with the given email, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns the account with the given id, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// SetScore overwrites the score of the account with the given id and
	// returns the updated record, or ErrUserNotFound. The write is
	// unconditional (no optimistic concurrency check).
	SetScore(ctx context.Context, id string, score int) (*User, error)
}

// Domain-level errors returned by the repository.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
