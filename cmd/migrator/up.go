package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
)

var migrationsDir string

// upCmd applies every pending migration.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbpool, log, err := connect(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer dbpool.Close()

		dtb := stdlib.OpenDBFromPool(dbpool)
		defer dtb.Close()

		if err = goose.SetDialect("postgres"); err != nil {
			return err
		}
		if err = goose.Up(dtb, migrationsDir); err != nil {
			log.Error("Failed to apply migrations", sl.Err(err))
			return err
		}

		log.Info("Migrations applied successfully", "dir", migrationsDir)
		return nil
	},
}

func init() {
	upCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory holding the goose migrations")
}
