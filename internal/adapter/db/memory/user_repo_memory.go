package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"user-management-api/internal/domain/user"
	pkgerrors "user-management-api/pkg/errors"
)

// UserRepoMemory implements the Repository interface over an ordered slice.
// State lives only for the lifetime of the process.
type UserRepoMemory struct {
	mu    sync.RWMutex
	users []user.User
	log   *zap.Logger
}

// NewUserRepoMemory creates an empty in-memory repository.
func NewUserRepoMemory(log *zap.Logger) *UserRepoMemory {
	return &UserRepoMemory{log: log}
}

// indexOf returns the position of id in r.users or -1. Callers hold the lock.
func (r *UserRepoMemory) indexOf(id int64) int {
	return slices.IndexFunc(r.users, func(u user.User) bool { return u.ID == id })
}

// Create appends a new user with ID max+1 (or 1 when empty).
func (r *UserRepoMemory) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := user.User{
		ID:    user.NextID(r.users),
		Name:  u.Name,
		Email: u.Email,
	}
	r.users = append(r.users, created)

	r.log.Debug("user created in memory", zap.Int64("id", created.ID), zap.Int("count", len(r.users)))
	return created.ID, nil
}

// GetByID returns a copy of the user with the given ID.
func (r *UserRepoMemory) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, pkgerrors.UserNotFound(id)
	}
	found := r.users[i]
	return &found, nil
}

// Update replaces name and email in place, keeping the ID and position.
func (r *UserRepoMemory) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(u.ID)
	if i < 0 {
		return 0, pkgerrors.UserNotFound(u.ID)
	}
	r.users[i].Name = u.Name
	r.users[i].Email = u.Email

	r.log.Debug("user updated in memory", zap.Int64("id", u.ID))
	return u.ID, nil
}

// Delete removes the user, preserving the order of the remaining ones.
func (r *UserRepoMemory) Delete(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, pkgerrors.UserNotFound(id)
	}
	r.users = slices.Delete(r.users, i, i+1)

	r.log.Debug("user deleted from memory", zap.Int64("id", id), zap.Int("count", len(r.users)))
	return id, nil
}

// List returns a snapshot of all users in insertion order.
func (r *UserRepoMemory) List(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out, nil
}
