package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/arekzadka7/mini-crm/internal/config"
	"github.com/arekzadka7/mini-crm/internal/importer"
	"github.com/arekzadka7/mini-crm/internal/storage"
)

func main() {
	var (
		filePath       string
		skipDuplicates bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a customers CSV file (name,email,phone)")
	flag.BoolVar(&skipDuplicates, "skip-duplicates", false, "Skip rows whose email already exists instead of failing")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, store.Customers, skipDuplicates)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d customers: %v", res.Imported, err)
	}

	fmt.Printf("Imported %d customers (%d skipped) in %s\n", res.Imported, res.Skipped, time.Since(start).Truncate(time.Millisecond))
}
