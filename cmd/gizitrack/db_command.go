// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/gizitrack/gizitrack/internal/config"
	"github.com/gizitrack/gizitrack/internal/database"
	"github.com/gizitrack/gizitrack/internal/logger"
	"github.com/gizitrack/gizitrack/internal/migrate"
)

func RunDBCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database operations",
	}

	cmd.AddCommand(runDBMigrateCommand(configPath))
	cmd.AddCommand(runDBRollbackCommand(configPath))
	cmd.AddCommand(runDBStatusCommand(configPath))
	cmd.AddCommand(runDBValidateCommand(configPath))
	cmd.AddCommand(runDBHistoryCommand(configPath))
	return cmd
}

// openRunner loads config, opens the database, and builds the migration
// runner with the application schema registered. The returned cleanup
// closes the database.
func openRunner(ctx context.Context, configPath string) (*migrate.Runner, func(), error) {
	cfg, err := config.New(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Config)

	db := database.New(database.Config{Path: cfg.Config.ResolveDatabasePath()})
	if err := db.Open(ctx); err != nil {
		return nil, nil, err
	}

	runner := migrate.NewRunner(db)
	migrate.RegisterAppMigrations(runner)
	return runner, func() { _ = db.Close() }, nil
}

func printResults(cmd *cobra.Command, results []migrate.Result) {
	for _, res := range results {
		status := "ok"
		if !res.Success {
			status = "failed: " + res.Err.Error()
		}
		cmd.Printf("  %s (%s) %s\n", res.Version, res.Duration.Round(time.Millisecond), status)
	}
}

func runDBMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, cleanup, err := openRunner(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := runner.Migrate(cmd.Context())
			printResults(cmd, results)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				cmd.Println("No pending migrations.")
			} else {
				cmd.Printf("Applied %d migrations. Current version: %s\n", len(results), runner.CurrentVersion(cmd.Context()))
			}
			return nil
		},
	}
}

func runDBRollbackCommand(configPath *string) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Revert schema migrations down to a target version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if target == "" {
				return errors.New("--target is required")
			}

			runner, cleanup, err := openRunner(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := runner.Rollback(cmd.Context(), target)
			printResults(cmd, results)
			if err != nil {
				return err
			}
			cmd.Printf("Reverted %d migrations. Current version: %s\n", len(results), runner.CurrentVersion(cmd.Context()))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "version to roll back to (exclusive)")
	return cmd
}

func runDBStatusCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current schema version and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, cleanup, err := openRunner(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			cmd.Printf("Current version: %s\n", runner.CurrentVersion(cmd.Context()))
			pending := runner.Pending(cmd.Context())
			if len(pending) == 0 {
				cmd.Println("No pending migrations.")
				return nil
			}
			cmd.Printf("Pending: %d\n", len(pending))
			for _, m := range pending {
				cmd.Printf("  %s  %s\n", m.Version, m.Description)
			}
			return nil
		},
	}
}

func runDBValidateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the migration registry for duplicate or malformed versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, cleanup, err := openRunner(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			problems := runner.Validate()
			if len(problems) == 0 {
				cmd.Println("Migration registry is consistent.")
				return nil
			}
			for _, p := range problems {
				cmd.Printf("  %s\n", p)
			}
			return errors.New("migration registry is inconsistent")
		},
	}
}

func runDBHistoryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, cleanup, err := openRunner(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			entries := runner.History(cmd.Context())
			if len(entries) == 0 {
				cmd.Println("No migrations applied.")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("  %s  %s  %s\n", e.Version, e.ExecutedAt.Format(time.RFC3339), e.Description)
			}
			return nil
		},
	}
}
