package testutil

import (
	"testing"

	"quest_backend/internal/config"
	"quest_backend/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory SQLite database with foreign keys
// enabled and the full schema migrated. It needs no external services.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err, "SetupTestDB: InitDB")
	require.NoError(t, database.Migrate(db), "SetupTestDB: Migrate")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
