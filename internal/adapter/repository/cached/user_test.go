package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-api/internal/adapter/cache"
	"user-management-api/internal/adapter/db/memory"
	domain "user-management-api/internal/domain/user"
	pkgerrors "user-management-api/pkg/errors"
)

// spyStore counts GetByID calls on top of a real in-memory store.
type spyStore struct {
	mock.Mock
	*memory.UserRepoMemory
}

func (s *spyStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.Called(id)
	return s.UserRepoMemory.GetByID(ctx, id)
}

func setup(t *testing.T) (*UserRepository, *spyStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	store := &spyStore{UserRepoMemory: memory.NewUserRepoMemory(log)}
	store.On("GetByID", mock.Anything)

	repo := NewUserRepository(store, cache.NewRedisUserCache(client, time.Minute, log), log)
	return repo, store, mr
}

func TestUserRepository_GetByID_CachesAfterMiss(t *testing.T) {
	repo, store, mr := setup(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(cache.Key(id)))
	store.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestUserRepository_UpdateEvicts(t *testing.T) {
	repo, store, mr := setup(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, id)
	require.NoError(t, err)

	_, err = repo.Update(ctx, &domain.User{ID: id, Name: "B", Email: "b@example.com"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.Key(id)))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	store.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestUserRepository_DeleteEvicts(t *testing.T) {
	repo, _, mr := setup(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, id)
	require.NoError(t, err)

	_, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.Key(id)))

	_, err = repo.GetByID(ctx, id)
	var nf *pkgerrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestUserRepository_CreateEvictsReusedID(t *testing.T) {
	repo, _, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(cache.Key(1), `{"id":1,"name":"stale","email":"stale@example.com"}`))

	id, err := repo.Create(ctx, &domain.User{Name: "Fresh", Email: "fresh@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Name)
}

func TestUserRepository_FallsBackWhenRedisDown(t *testing.T) {
	repo, _, mr := setup(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	mr.Close()

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestUserRepository_NilCacheIsPassThrough(t *testing.T) {
	log := zaptest.NewLogger(t)
	repo := NewUserRepository(memory.NewUserRepoMemory(log), nil, log)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
