package entity

import (
	"time"

	"gorm.io/datatypes"
)

// LocalStorage is one key of the local key-value fallback store.
type LocalStorage struct {
	Key       string         `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the LocalStorage model.
func (LocalStorage) TableName() string {
	return "local_storage"
}
