// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gizitrack/gizitrack/internal/database"
	"github.com/gizitrack/gizitrack/internal/migrate"
)

func newMigratedDB(t *testing.T) *database.DB {
	t.Helper()

	db := database.New(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, db.Open(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	runner := migrate.NewRunner(db)
	migrate.RegisterAppMigrations(runner)
	_, err := runner.Migrate(context.Background())
	require.NoError(t, err)

	return db
}
