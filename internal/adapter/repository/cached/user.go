package cached

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-management-api/internal/adapter/cache"
	domain "user-management-api/internal/domain/user"
	"user-management-api/internal/usecase/user"
)

// UserRepository decorates a user.Repository with a cache-aside read path.
// Writes go to the store first and then evict the cached entry.
type UserRepository struct {
	store user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository wraps store with c. A nil cache turns the decorator into a pass-through.
func NewUserRepository(store user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		store: store,
		cache: c,
		log:   log,
	}
}

// Create delegates to the store. New IDs are never cached eagerly.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.store.Create(ctx, u)
	if err != nil {
		return 0, err
	}
	// an ID can be reused after its maximum was deleted
	r.evict(ctx, id, "create")
	return id, nil
}

// GetByID serves from cache when possible and collapses concurrent misses into one store read.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache == nil {
		return r.store.GetByID(ctx, id)
	}

	if cachedUser, err := r.cache.Get(ctx, id); err != nil {
		r.log.Warn("cache get error, falling back to store", zap.Int64("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	result, err, _ := r.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		u, err := r.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing the flight must not share the pointer
	u := *result.(*domain.User)
	return &u, nil
}

// Update writes through to the store and evicts the cached entry.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.store.Update(ctx, u)
	if err != nil {
		return 0, err
	}
	r.evict(ctx, u.ID, "update")
	return id, nil
}

// Delete removes from the store and evicts the cached entry.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	deletedID, err := r.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	r.evict(ctx, id, "delete")
	return deletedID, nil
}

// List always reads from the store.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.store.List(ctx)
}

func (r *UserRepository) evict(ctx context.Context, id int64, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	}
}
