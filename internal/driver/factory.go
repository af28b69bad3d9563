package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/zomra/internal/config"
)

// NewStore opens the configured backend and ensures its schema exists.
func NewStore(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "zomra.db"
		}
		store, err = NewSQLiteStore(dsn)
	case "postgres", "postgresql", "pgx":
		store, err = NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
