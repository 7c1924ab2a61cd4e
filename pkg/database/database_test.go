package database

import (
	"testing"

	"quest_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := dialector(&config.DatabaseConfig{
			Driver:     driver,
			Host:       "localhost",
			Port:       5432,
			User:       "u",
			Password:   "p",
			DBName:     "quest",
			SSLMode:    "disable",
			Charset:    "utf8mb4",
			SQLitePath: "quest.db",
		})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func openMemoryDB(t *testing.T, maxIdle int) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: maxIdle,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestInitDB_SQLiteMigrates(t *testing.T) {
	db := openMemoryDB(t, 1)

	require.NoError(t, Migrate(db))
	for _, table := range []string{"quest", "task", "completion", "task_completion"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("quest", "quest_name_uc"))
	assert.True(t, db.Migrator().HasIndex("task", "task_question_uc"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestInitDB_UnsetIdleLimitKeepsMemoryDB(t *testing.T) {
	db := openMemoryDB(t, 0)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("task_completion"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().Idle)
}

func TestInitRedis_Disabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
