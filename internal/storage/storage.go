// Package storage opens the configured customer store, makes sure its
// schema exists and hands out the repository built on top of it.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/arekzadka7/mini-crm/internal/config"
	"github.com/arekzadka7/mini-crm/internal/db"
	"github.com/arekzadka7/mini-crm/internal/domain"
	"github.com/arekzadka7/mini-crm/internal/migrate"
	customerrepo "github.com/arekzadka7/mini-crm/internal/repository/customer"
)

// Storage bundles the customer repository with its connection lifecycle.
type Storage struct {
	Customers customerrepo.Repository

	ping  func(context.Context) error
	close func()
}

// Open connects to the backend selected by cfg.DBDriver and initializes the schema.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Storage, error) {
	opts := []customerrepo.Option{customerrepo.WithEscapedWildcards(cfg.EscapeSearchWildcards)}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		if err := migrate.ApplySQLite(ctx, cfg.DBPath); err != nil {
			return nil, fmt.Errorf("%w: init schema: %w", domain.ErrStorageUnavailable, err)
		}
		sqlDB, err := db.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return &Storage{
			Customers: customerrepo.NewSQLite(sqlDB, logger, opts...),
			ping:      sqlDB.PingContext,
			close:     func() { _ = sqlDB.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, fmt.Errorf("%w: connect to db: %w", domain.ErrStorageUnavailable, err)
		}
		if err := migrate.ApplyPostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%w: init schema: %w", domain.ErrStorageUnavailable, err)
		}
		return &Storage{
			Customers: customerrepo.NewPostgres(pool, logger, opts...),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// Ping reports whether the store is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases every connection held by the store.
func (s *Storage) Close() {
	s.close()
}
