package main

import (
	"context"
	"log"
	"os"

	"github.com/arekzadka7/mini-crm/internal/config"
	"github.com/arekzadka7/mini-crm/internal/seed"
	"github.com/arekzadka7/mini-crm/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer store.Close()

	inserted, err := seed.Apply(ctx, store.Customers)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied (%d new customers)", inserted)
}
