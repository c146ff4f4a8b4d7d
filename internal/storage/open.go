// Package storage selects the ledger slot store named by configuration.
package storage

import (
	"context"
	"fmt"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/storage/memory"
	"crowdfund/internal/storage/sqlite"
)

// Handle is an opened store plus the function releasing its resources.
type Handle struct {
	Store  domain.TotalStore
	Driver string
	close  func() error
}

// Close releases the underlying connections. It is safe on a nil Handle.
func (h *Handle) Close() error {
	if h == nil || h.close == nil {
		return nil
	}
	return h.close()
}

// Open connects the store for cfg.StoreDriver.
func Open(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Handle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	switch cfg.StoreDriver {
	case infra.StoreDriverMemory, "":
		return &Handle{Store: memory.New(), Driver: infra.StoreDriverMemory}, nil
	case infra.StoreDriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Handle{Store: s, Driver: infra.StoreDriverSQLite, close: s.Close}, nil
	case infra.StoreDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Handle{
			Store:  repo.NewTotalRepository(pool, logger),
			Driver: infra.StoreDriverPostgres,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.StoreDriver)
	}
}
