package chatdb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatroom/chat-service/internal/domain/models"
	rediscache "github.com/chatroom/chat-service/internal/infrastructure/cache/redis"
	"github.com/chatroom/chat-service/internal/services/chatdb"
	"github.com/chatroom/chat-service/internal/testutil/mocks"
)

func setupCachedRepository(t *testing.T) (*chatdb.Repository, *mocks.CountingProvider, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	repo, counting := setupRepository(t, chatdb.WithUserCache(client, time.Minute))
	return repo, counting, mr
}

func TestUserCache_SaveThenFindByIDSkipsStore(t *testing.T) {
	repo, counting, mr := setupCachedRepository(t)
	ctx := context.Background()

	ok, err := repo.SaveUser(ctx, &models.User{ID: "1", Mail: "a@b.com", Password: "hash"})
	require.NoError(t, err)
	require.True(t, ok)
	counting.Reset()

	cached, err := mr.Get("user:1")
	require.NoError(t, err)
	assert.NotContains(t, cached, "hash")
	assert.Equal(t, time.Minute, mr.TTL("user:1"))

	user, err := repo.FindUserByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Mail)
	assert.Equal(t, 0, counting.Acquired())
}

func TestUserCache_MissPopulates(t *testing.T) {
	repo, counting, mr := setupCachedRepository(t)
	ctx := context.Background()

	_, err := repo.SaveUser(ctx, &models.User{ID: "1", Mail: "a@b.com"})
	require.NoError(t, err)
	mr.FlushAll()
	counting.Reset()

	user, err := repo.FindUserByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, counting.Acquired())
	assert.True(t, mr.Exists("user:1"))

	_, err = repo.FindUserByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, counting.Acquired())
}

func TestUserCache_NotFoundIsNotCached(t *testing.T) {
	repo, _, mr := setupCachedRepository(t)

	user, err := repo.FindUserByID(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, mr.Exists("user:ghost"))
}

func TestUserCache_CorruptEntryFallsBackToStore(t *testing.T) {
	repo, counting, mr := setupCachedRepository(t)
	ctx := context.Background()

	_, err := repo.SaveUser(ctx, &models.User{ID: "1", Mail: "a@b.com"})
	require.NoError(t, err)
	require.NoError(t, mr.Set("user:1", "{not json"))
	counting.Reset()

	user, err := repo.FindUserByID(ctx, "1")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Mail)
	assert.Equal(t, 1, counting.Acquired())
}

func TestUserCache_ErrorsAreIgnored(t *testing.T) {
	cacheClient := mocks.NewMockCacheClient()
	cacheClient.On("Get", mock.Anything, "user:1").Return(nil, errors.New("redis down"))
	cacheClient.On("Delete", mock.Anything, "user:1").Return(false, errors.New("redis down"))
	cacheClient.On("Set", mock.Anything, "user:1", mock.Anything, chatdb.DefaultUserCacheTTL).Return(errors.New("redis down"))

	repo, counting := setupRepository(t, chatdb.WithUserCache(cacheClient, 0))
	ctx := context.Background()

	ok, err := repo.SaveUser(ctx, &models.User{ID: "1", Mail: "a@b.com"})
	require.NoError(t, err)
	require.True(t, ok)
	counting.Reset()

	user, err := repo.FindUserByID(ctx, "1")

	require.NoError(t, err)
	require.NotNil(t, user)
	assertOneSession(t, counting)
	cacheClient.AssertExpectations(t)
}
