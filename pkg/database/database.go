package database

import (
	"fmt"
	"strings"
	"time"

	"quest_backend/internal/config"
	"quest_backend/internal/model"
	"quest_backend/internal/util"
	"quest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewGormConfig is shared by every driver. TranslateError makes unique
// violations surface as gorm.ErrDuplicatedKey regardless of dialect.
func NewGormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case util.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case util.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.Charset)
		return mysql.Open(dsn), nil
	case util.DriverSQLite:
		sep := "?"
		if strings.Contains(cfg.SQLitePath, "?") {
			sep = "&"
		}
		return sqlite.Open(cfg.SQLitePath + sep + "_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, NewGormConfig(cfg.LogLevel))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	// Zero keeps the database/sql default. An idle limit of zero would
	// close every connection after use and drop in-memory sqlite databases.
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logger.Log.Info("Database connection established",
		zap.String("driver", cfg.Driver),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

// Migrate creates or updates the quest, task, completion and task_completion tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Log.Info("Database migration completed")
	return nil
}
