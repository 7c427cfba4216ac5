package main

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/anonto42/scriblyn/backend/pkg/config"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const migrateTimeout = 30 * time.Second

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes and the PostgreSQL user table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log.InitLogger(cfg.Env, cfg.LogLevel)

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()
			if err := migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Log.Info("Migrations applied")
			return nil
		},
	}
}

// migrate is idempotent and also runs on every serve start.
func migrate(ctx context.Context, db *config.DB) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	if err := repositories.EnsureIndexes(ctx, db.Database); err != nil {
		return errors.Wrap(err, "ensure mongo indexes")
	}
	if db.Postgres != nil {
		if err := repositories.NewPostgresUserRepository(db.Postgres).AutoMigrate(); err != nil {
			return errors.Wrap(err, "migrate postgres users")
		}
	}
	return nil
}
