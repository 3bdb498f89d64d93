// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gizitrack/gizitrack/internal/api"
	"github.com/gizitrack/gizitrack/internal/config"
	"github.com/gizitrack/gizitrack/internal/database"
	"github.com/gizitrack/gizitrack/internal/logger"
	"github.com/gizitrack/gizitrack/internal/migrate"
	"github.com/gizitrack/gizitrack/internal/models"
	"github.com/gizitrack/gizitrack/internal/nutrition"
)

const shutdownTimeout = 10 * time.Second

func RunServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gizitrack HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*configPath)
			if err != nil {
				return err
			}
			logger.Setup(cfg.Config)

			ctx := cmd.Context()

			db := database.New(database.Config{Path: cfg.Config.ResolveDatabasePath()})
			if err := db.Open(ctx); err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			runner := migrate.NewRunner(db)
			migrate.RegisterAppMigrations(runner)
			if problems := runner.Validate(); len(problems) > 0 {
				for _, p := range problems {
					log.Error().Msg(p)
				}
				return errors.New("migration registry is inconsistent")
			}
			if _, err := runner.Migrate(ctx); err != nil {
				return err
			}

			foodLogs := models.NewFoodLogStore(db)
			deps := api.Deps{
				Config:   cfg.Config,
				DB:       db,
				Profiles: models.NewProfileStore(db),
				FoodLogs: foodLogs,
				Analyzer: nutrition.NewAnalyzer(foodLogs),
			}

			srv := &http.Server{
				Addr:    cfg.Config.ListenAddr(),
				Handler: api.NewRouter(deps),
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
}
