package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openAdapter connects to the configured database. The caller owns the
// returned adapter and must Close it.
func openAdapter(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	adapter, err := database.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return adapter, nil
}
