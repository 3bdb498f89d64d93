// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package migrate

import (
	"context"
	"time"

	"github.com/gizitrack/gizitrack/internal/database"
)

// RegisterAppMigrations registers the gizitrack application schema, in
// ascending version order so execution order matches registry order.
func RegisterAppMigrations(r *Runner) {
	r.Register(Migration{
		Version:     "1.0.0",
		Description: "create profiles table",
		CreatedAt:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Up: func(ctx context.Context, tx *database.Tx) error {
			_, err := tx.Exec(ctx, `
				CREATE TABLE profiles (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					sex TEXT NOT NULL CHECK (sex IN ('male', 'female')),
					age INTEGER NOT NULL,
					height_cm REAL NOT NULL,
					weight_kg REAL NOT NULL,
					created_at INTEGER NOT NULL,
					updated_at INTEGER NOT NULL
				)
			`)
			return err
		},
		Down: func(ctx context.Context, tx *database.Tx) error {
			_, err := tx.Exec(ctx, `DROP TABLE profiles`)
			return err
		},
	})

	r.Register(Migration{
		Version:     "1.1.0",
		Description: "create food_logs table",
		CreatedAt:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Up: func(ctx context.Context, tx *database.Tx) error {
			_, err := tx.Exec(ctx, `
				CREATE TABLE food_logs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					profile_id INTEGER NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					calories REAL NOT NULL,
					protein_g REAL NOT NULL DEFAULT 0,
					fat_g REAL NOT NULL DEFAULT 0,
					carbs_g REAL NOT NULL DEFAULT 0,
					sodium_mg REAL NOT NULL DEFAULT 0,
					sugar_g REAL NOT NULL DEFAULT 0,
					logged_at INTEGER NOT NULL
				)
			`)
			return err
		},
		Down: func(ctx context.Context, tx *database.Tx) error {
			_, err := tx.Exec(ctx, `DROP TABLE food_logs`)
			return err
		},
	})

	r.Register(Migration{
		Version:     "1.2.0",
		Description: "add activity level to profiles and index food_logs",
		CreatedAt:   time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
		Up: func(ctx context.Context, tx *database.Tx) error {
			if _, err := tx.Exec(ctx, `ALTER TABLE profiles ADD COLUMN activity_level TEXT NOT NULL DEFAULT 'sedentary'`); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `CREATE INDEX idx_food_logs_profile_logged ON food_logs (profile_id, logged_at)`)
			return err
		},
		Down: func(ctx context.Context, tx *database.Tx) error {
			if _, err := tx.Exec(ctx, `DROP INDEX idx_food_logs_profile_logged`); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `ALTER TABLE profiles DROP COLUMN activity_level`)
			return err
		},
	})
}
