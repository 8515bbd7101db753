package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tnp-quickview/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStoreRepository is the key-value fallback store kept next to the service.
type LocalStoreRepository interface {
	// Get returns the stored value, or nil when the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type localStoreRepository struct {
	db *gorm.DB
}

// NewLocalStoreRepository creates a LocalStoreRepository over gorm.
func NewLocalStoreRepository(db *gorm.DB) LocalStoreRepository {
	return &localStoreRepository{db: db}
}

// AutoMigrateLocalStore creates the local_storage table. Postgres deployments
// use the SQL migrations instead.
func AutoMigrateLocalStore(db *gorm.DB) error {
	return db.AutoMigrate(&entity.LocalStorage{})
}

func (r *localStoreRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var rec entity.LocalStorage
	err := r.db.WithContext(ctx).Where(&entity.LocalStorage{Key: key}).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local key %s: %w", key, err)
	}
	return []byte(rec.Value), nil
}

func (r *localStoreRepository) Set(ctx context.Context, key string, value []byte) error {
	rec := entity.LocalStorage{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to set local key %s: %w", key, err)
	}
	return nil
}
