// @title Quest Service API
// @version 1.0
// @description CRUD API for quests and their tasks.

// @host localhost:8080
// @BasePath /api

package main

import (
	"context"
	"flag"
	"log"

	"quest_backend/internal/app"
	"quest_backend/internal/config"
	"quest_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		application.Close(context.Background())
		return
	}

	application.ConfigDir = *configPath
	application.Run()
}
