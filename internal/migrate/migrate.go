// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package migrate applies versioned schema changes to a gizitrack database.
//
// Migrations are registered as Go functions with a semantic version and an
// up/down pair. Applied versions are recorded in the schema_migrations
// ledger; the ledger's maximum version is the current database version. A
// run applies (or reverts) every step inside a single transaction, so the
// database is always observably at a fully-applied version between calls.
package migrate

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/database"
)

// zeroVersion is the current version of a database with no ledger.
const zeroVersion = "0.0.0"

const createLedgerTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		executed_at INTEGER NOT NULL,
		checksum TEXT
	)
`

// Migration is one versioned schema change. Up applies it, Down reverts
// it. Definitions are immutable after registration.
type Migration struct {
	Version     string
	Description string
	CreatedAt   time.Time
	Up          func(ctx context.Context, tx *database.Tx) error
	Down        func(ctx context.Context, tx *database.Tx) error
}

// Result records one attempted migration step.
type Result struct {
	Version  string
	Success  bool
	Err      error
	Duration time.Duration
}

// HistoryEntry is one applied-migration row from the ledger.
type HistoryEntry struct {
	Version     string
	Description string
	ExecutedAt  time.Time
}

// Runner holds the in-memory migration registry for one database. It is
// constructed explicitly and passed by reference; there is no process-wide
// registry, so tests can build isolated runners.
type Runner struct {
	db         *database.DB
	migrations []Migration
}

// NewRunner creates a runner bound to db with an empty registry.
func NewRunner(db *database.DB) *Runner {
	return &Runner{db: db}
}

// Register appends a migration definition to the registry. Registration
// order is insertion order and need not match version order; duplicate or
// malformed versions are only detected by an explicit Validate call.
func (r *Runner) Register(m Migration) {
	r.migrations = append(r.migrations, m)
}

// CurrentVersion returns the maximum version recorded in the ledger. A
// missing ledger table, or any read failure, is treated as "no migrations
// applied yet" and returns 0.0.0.
func (r *Runner) CurrentVersion(ctx context.Context) string {
	rows, err := r.db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return zeroVersion
	}

	current := zeroVersion
	for i := 0; i < rows.Len(); i++ {
		v, ok := rows.Values[i][0].(string)
		if !ok {
			continue
		}
		if compareVersions(v, current) > 0 {
			current = v
		}
	}
	return current
}

// Pending returns every registered migration whose version strictly
// exceeds the current database version, in registration order. Callers
// that rely on execution order should register in ascending version order.
func (r *Runner) Pending(ctx context.Context) []Migration {
	current := r.CurrentVersion(ctx)

	var pending []Migration
	for _, m := range r.migrations {
		if compareVersions(m.Version, current) > 0 {
			pending = append(pending, m)
		}
	}
	return pending
}

// Migrate ensures the ledger table exists and applies every pending
// migration inside a single transaction, recording a ledger row per step.
// If any step fails, the whole transaction rolls back and no version is
// applied; the returned results still describe every attempted step. An
// empty pending set returns an empty result list without opening a
// transaction.
func (r *Runner) Migrate(ctx context.Context) ([]Result, error) {
	if _, err := r.db.Exec(ctx, createLedgerTable); err != nil {
		return nil, err
	}

	pending := r.Pending(ctx)
	if len(pending) == 0 {
		log.Debug().Msg("no pending migrations")
		return []Result{}, nil
	}

	results := make([]Result, 0, len(pending))
	err := r.db.Transaction(ctx, func(tx *database.Tx) error {
		for _, m := range pending {
			start := time.Now()
			log.Info().Str("version", m.Version).Str("description", m.Description).Msg("applying migration")

			if err := m.Up(ctx, tx); err != nil {
				results = append(results, Result{Version: m.Version, Err: err, Duration: time.Since(start)})
				return fmt.Errorf("migration %s: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, description, executed_at) VALUES (?, ?, ?)`,
				m.Version, m.Description, time.Now().UnixMilli(),
			); err != nil {
				results = append(results, Result{Version: m.Version, Err: err, Duration: time.Since(start)})
				return fmt.Errorf("record migration %s: %w", m.Version, err)
			}

			results = append(results, Result{Version: m.Version, Success: true, Duration: time.Since(start)})
		}
		return nil
	})
	if err != nil {
		return results, err
	}

	log.Info().Int("applied", len(results)).Msg("migrations applied")
	return results, nil
}

// Rollback reverts every applied migration with version in the open-closed
// range (target, current], last-applied first, inside a single transaction,
// deleting each ledger row. The target must be strictly older than the
// current version.
func (r *Runner) Rollback(ctx context.Context, target string) ([]Result, error) {
	current := r.CurrentVersion(ctx)
	if compareVersions(target, current) >= 0 {
		return nil, database.NewError(database.KindInvalidTarget, "migrate.Rollback",
			fmt.Sprintf("target version %s is not older than current version %s", target, current), nil)
	}

	var set []Migration
	for _, m := range r.migrations {
		if compareVersions(m.Version, target) > 0 && compareVersions(m.Version, current) <= 0 {
			set = append(set, m)
		}
	}
	// Reverse of forward application order: last applied is first reverted.
	sort.SliceStable(set, func(i, j int) bool {
		return compareVersions(set[i].Version, set[j].Version) > 0
	})

	results := make([]Result, 0, len(set))
	err := r.db.Transaction(ctx, func(tx *database.Tx) error {
		for _, m := range set {
			start := time.Now()
			log.Info().Str("version", m.Version).Str("description", m.Description).Msg("reverting migration")

			if err := m.Down(ctx, tx); err != nil {
				results = append(results, Result{Version: m.Version, Err: err, Duration: time.Since(start)})
				return fmt.Errorf("rollback %s: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version); err != nil {
				results = append(results, Result{Version: m.Version, Err: err, Duration: time.Since(start)})
				return fmt.Errorf("delete ledger row %s: %w", m.Version, err)
			}

			results = append(results, Result{Version: m.Version, Success: true, Duration: time.Since(start)})
		}
		return nil
	})
	if err != nil {
		return results, err
	}

	log.Info().Int("reverted", len(results)).Str("target", target).Msg("rollback complete")
	return results, nil
}

// History returns all ledger rows ordered by ascending version. An
// unreadable ledger yields an empty list, never an error.
func (r *Runner) History(ctx context.Context) []HistoryEntry {
	rows, err := r.db.Query(ctx, `SELECT version, description, executed_at FROM schema_migrations`)
	if err != nil {
		return []HistoryEntry{}
	}

	entries := make([]HistoryEntry, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		m := rows.Map(i)
		version, _ := m["version"].(string)
		description, _ := m["description"].(string)
		millis, _ := m["executed_at"].(int64)
		entries = append(entries, HistoryEntry{
			Version:     version,
			Description: description,
			ExecutedAt:  time.UnixMilli(millis),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compareVersions(entries[i].Version, entries[j].Version) < 0
	})
	return entries
}

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate runs a static consistency check over the registry: duplicate
// versions and versions not matching the major.minor.patch integer triple
// format. It never touches the database and is advisory; Migrate and
// Rollback do not invoke it.
func (r *Runner) Validate() []string {
	var problems []string

	seen := make(map[string]struct{}, len(r.migrations))
	for _, m := range r.migrations {
		if _, dup := seen[m.Version]; dup {
			problems = append(problems, fmt.Sprintf("duplicate migration version %s", m.Version))
		}
		seen[m.Version] = struct{}{}

		if !versionPattern.MatchString(m.Version) {
			problems = append(problems, fmt.Sprintf("migration version %q does not match major.minor.patch", m.Version))
		}
	}
	return problems
}

// compareVersions orders two dotted version strings, comparing integer
// segments left to right with missing trailing segments treated as zero
// ("1.2" equals "1.2.0"). Unparseable versions sort lowest.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}
