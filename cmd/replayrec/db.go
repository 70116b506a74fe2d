package main

import (
	"context"
	"fmt"

	"replayrec/internal/config"
	"replayrec/internal/store"
	"replayrec/internal/store/postgres"
	"replayrec/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	if dsn == "" {
		return nil, fmt.Errorf("database.dsn is not configured")
	}

	var st store.Store
	var err error
	switch config.DSNDriver(dsn) {
	case "sqlite":
		st, err = sqlite.New(ctx, dsn)
	case "postgres":
		st, err = postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database dsn: %s", dsn)
	}
	if err != nil {
		return nil, err
	}

	if err := st.EnsureSchema(ctx); err != nil {
		st.Close(ctx)
		return nil, err
	}
	return st, nil
}
