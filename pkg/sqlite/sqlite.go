package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tnp-quickview/pkg/postgres"
)

// NewDB opens (or creates) a SQLite database file through gorm.
// Use ":memory:" for a throwaway database.
func NewDB(path, logLevel string) (*gorm.DB, error) {
	if path == "" {
		path = "quickview.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(postgres.ParseLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	return db, nil
}
