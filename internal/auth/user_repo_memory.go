package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserRepo is a threadsafe in-memory UserRepository useful for tests.
// NOT suitable for production without persistence.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*User // key = user id
}

// NewMemoryUserRepo returns an empty repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*User)}
}

// Create inserts a new user if the email is not taken.
func (r *MemoryUserRepo) Create(ctx context.Context, email, name, passwordHash string, role Role) (*User, error) {
	key := strings.ToLower(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == key {
			return nil, ErrUserExists
		}
	}

	now := time.Now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        key,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Score:        0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user

	clone := *user
	return &clone, nil
}

// GetByEmail retrieves a user by case-insensitive email.
func (r *MemoryUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	key := strings.ToLower(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == key {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID retrieves a user by id.
func (r *MemoryUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// SetScore overwrites the score of an existing user.
func (r *MemoryUserRepo) SetScore(ctx context.Context, id string, score int) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Score = score
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

// Delete removes a user out-of-band. Only used by tests exercising the
// identity-disappeared paths.
func (r *MemoryUserRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}
