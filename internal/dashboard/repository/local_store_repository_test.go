package repository

import (
	"context"
	"testing"

	"tnp-quickview/pkg/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.NewDB(":memory:", "silent")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrateLocalStore(db))
	return db
}

func TestLocalStoreRepository(t *testing.T) {
	t.Parallel()

	repo := NewLocalStoreRepository(setupTestDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx, "stockLikes")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, "stockLikes", []byte(`{"7203":{"count":1,"liked":true}}`)))
	got, err = repo.Get(ctx, "stockLikes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"7203":{"count":1,"liked":true}}`, string(got))

	require.NoError(t, repo.Set(ctx, "stockLikes", []byte(`{}`)), "second write overwrites")
	got, err = repo.Get(ctx, "stockLikes")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got))

	require.NoError(t, repo.Set(ctx, "userName", []byte(`"太郎"`)))
	got, err = repo.Get(ctx, "userName")
	require.NoError(t, err)
	assert.Equal(t, `"太郎"`, string(got))
}
