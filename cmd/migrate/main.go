package main

import (
	"context"
	"log"
	"os"

	"github.com/arekzadka7/mini-crm/internal/config"
	"github.com/arekzadka7/mini-crm/internal/db"
	"github.com/arekzadka7/mini-crm/internal/migrate"
)

func main() {
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect db: %v", err)
		}
		defer pool.Close()

		if err := migrate.ApplyPostgres(ctx, pool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
	default:
		if err := migrate.ApplySQLite(ctx, cfg.DBPath); err != nil {
			logger.Fatalf("apply migrations to %s: %v", cfg.DBPath, err)
		}
	}

	logger.Println("migrations applied")
}
