package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/config"
	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

var errEphemeralStorage = errors.New("the memory backend keeps nothing between runs: set storage.backend to sqlite or pass --db")

// addDBFlag registers --db on commands that work on a stored ledger. It is
// read from the command directly so it never shadows the server's binding of
// storage.sqlite_path.
func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "SQLite database file (implies the sqlite backend)")
}

// storedConfig loads the configuration for commands that read or write a
// ledger outside the server. Those need persistent storage.
func storedConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load(viper.GetViper())
	if cmd.Flags().Changed("db") {
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			return nil, errors.New("--db must not be empty")
		}
		cfg.Backend = config.BackendSQLite
		cfg.SQLitePath = path
	}
	if cfg.Backend == config.BackendMemory {
		return nil, errEphemeralStorage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openUserLedger opens the ledger of a registered user. The returned func
// closes the underlying storage.
func openUserLedger(ctx context.Context, cfg *config.Config, userID string) (*ledger.Ledger, func() error, error) {
	gw, err := openGateway(cfg)
	if err != nil {
		return nil, nil, err
	}
	repo := storage.NewRepository(gw)

	if _, err := auth.NewPasswordAuthenticator(repo).User(ctx, userID); err != nil {
		gw.Close()
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", auth.ErrUserNotFound, userID)
		}
		return nil, nil, err
	}

	l, err := ledger.Open(ctx, repo, userID)
	if err != nil {
		gw.Close()
		return nil, nil, err
	}
	return l, gw.Close, nil
}
