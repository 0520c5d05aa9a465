package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/baechuer/identity-service/internal/domain"
)

// UserDirectory is an in-process auth.UserDirectory for local development
// and tests. Create checks and inserts under one lock, so the email
// uniqueness guarantee matches the database constraint.
type UserDirectory struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserDirectory) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *UserDirectory) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	return u, ok, nil
}

func (r *UserDirectory) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if _, exists := r.byID[u.ID]; exists {
		return domain.User{}, domain.ErrPersistence(fmt.Errorf("duplicate id %q", u.ID))
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserDirectory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
