package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"tnp-quickview/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestRemoteStoreRepository_GetSet(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewRemoteStoreRepository(client, logger.NewNop(), "quickview")
	ctx := context.Background()

	got, err := repo.Get(ctx, "likes")
	require.NoError(t, err)
	assert.Nil(t, got, "missing key reads as nil")

	require.NoError(t, repo.Set(ctx, "likes", []byte(`{"7203":{"count":1,"liked":true}}`)))

	got, err = repo.Get(ctx, "likes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"7203":{"count":1,"liked":true}}`, string(got))

	stored, err := mr.Get("quickview:likes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"7203":{"count":1,"liked":true}}`, stored)
}

func TestRemoteStoreRepository_Subscribe(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewRemoteStoreRepository(client, logger.NewNop(), "quickview")
	ctx := context.Background()

	received := make(chan string, 1)
	unsubscribe, err := repo.Subscribe(ctx, "comments", func(payload []byte) {
		received <- string(payload)
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, repo.Set(ctx, "comments", []byte(`{"7203":[]}`)))

	select {
	case payload := <-received:
		assert.JSONEq(t, `{"7203":[]}`, payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot published")
	}

	unsubscribe()
	unsubscribe()
}

func TestRemoteStoreRepository_Errors(t *testing.T) {
	t.Parallel()

	t.Run("failure: get error is wrapped", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		repo := NewRemoteStoreRepository(db, logger.NewNop(), "quickview")
		boom := errors.New("connection refused")
		mock.ExpectGet("quickview:likes").SetErr(boom)

		_, err := repo.Get(context.Background(), "likes")

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: redis nil is not an error", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		repo := NewRemoteStoreRepository(db, logger.NewNop(), "quickview")
		mock.ExpectGet("quickview:comments").RedisNil()

		got, err := repo.Get(context.Background(), "comments")

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("failure: ping against closed server", func(t *testing.T) {
		t.Parallel()

		client, mr := setupTestRedis(t)
		repo := NewRemoteStoreRepository(client, logger.NewNop(), "quickview")
		mr.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.Error(t, repo.Ping(ctx))
		assert.Error(t, repo.Set(ctx, "likes", []byte(`{}`)))
	})
}
