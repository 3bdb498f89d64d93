// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package database provides the SQLite connection manager for gizitrack.
//
// The application is a single-process, single-writer local service, so the
// layer is deliberately simple: one connection, a TTL-bounded cache of
// materialized read results, and coarse wholesale cache invalidation on
// every write. Clearing the cache on any write is the simplest policy that
// can never serve a stale read; redundant cache rebuilds are acceptable for
// a local workload.
//
// CONCURRENCY MODEL:
//
// A single mutex serializes every storage-facing operation, including whole
// transactions. Overlapping calls from multiple goroutines are therefore
// safe but sequential. While a transaction is open, the only valid access
// path is the *Tx handle passed to the transaction callback; calling the
// top-level Query/Exec from inside the callback deadlocks by construction.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/gizitrack/gizitrack/internal/dbinterface"
)

const (
	defaultBusyTimeout = 5 * time.Second
	defaultCacheTTL    = 5 * time.Minute
)

// Config describes one database handle.
type Config struct {
	// Path is the SQLite database file location.
	Path string
	// ReadOnly rejects writes at the storage level via PRAGMA query_only.
	ReadOnly bool
	// BusyTimeout bounds how long a statement waits on a locked database.
	BusyTimeout time.Duration
	// CacheTTL bounds how long a cached read result may live.
	CacheTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = defaultBusyTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	return c
}

// DB is a handle to one SQLite session. The zero value is not usable; use
// New followed by Open.
type DB struct {
	cfg Config

	mu     sync.Mutex
	conn   *sql.DB
	active bool

	cache     *ttlcache.Cache[string, *dbinterface.Rows]
	cacheKeys map[string]struct{}

	queries      int64
	reads        int64
	cacheHits    int64
	totalLatency time.Duration
	lastCleanup  time.Time
}

// New creates an unopened handle for the given configuration.
func New(cfg Config) *DB {
	return &DB{cfg: cfg.withDefaults()}
}

// Open opens the underlying connection and enables foreign key enforcement.
// Calling Open on an already open handle is a no-op. On failure the handle
// stays uninitialized and the returned error wraps the underlying cause.
func (db *DB) Open(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.active {
		return nil
	}

	if dir := filepath.Dir(db.cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewError(KindConnInit, "database.Open", fmt.Sprintf("create database directory %s", dir), err)
		}
	}

	conn, err := sql.Open("sqlite", db.cfg.Path)
	if err != nil {
		return NewError(KindConnInit, "database.Open", fmt.Sprintf("open database at %s", db.cfg.Path), err)
	}

	// One connection total: the app is a single logical writer and a pool
	// would only reintroduce stale-schema surprises during migrations.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", int(db.cfg.BusyTimeout/time.Millisecond)),
		"PRAGMA foreign_keys = ON",
	}
	if db.cfg.ReadOnly {
		pragmas = append(pragmas, "PRAGMA query_only = ON")
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return NewError(KindConnInit, "database.Open", fmt.Sprintf("apply %q", pragma), err)
		}
	}

	opts := ttlcache.Options[string, *dbinterface.Rows]{}.SetDefaultTTL(db.cfg.CacheTTL)

	db.conn = conn
	db.cache = ttlcache.New(opts)
	db.cacheKeys = make(map[string]struct{})
	db.active = true

	log.Debug().Str("path", db.cfg.Path).Bool("readOnly", db.cfg.ReadOnly).Msg("database opened")
	return nil
}

// Active reports whether the handle is currently open.
func (db *DB) Active() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.active
}

// Query runs a read statement. Results are materialized and cached keyed on
// statement text plus parameters; a cached result is returned without
// touching storage.
func (db *DB) Query(ctx context.Context, query string, args ...any) (*dbinterface.Rows, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.active {
		return nil, NewError(KindNotInitialized, "database.Query", "database not initialized", nil)
	}

	start := time.Now()
	key := cacheKey(query, args)

	if rows, found := db.cache.Get(key); found {
		db.queries++
		db.reads++
		db.cacheHits++
		db.totalLatency += time.Since(start)
		return rows, nil
	}

	rows, err := materialize(db.conn.QueryContext(ctx, query, args...))
	if err != nil {
		return nil, NewError(KindQuery, "database.Query", "query failed", err)
	}

	db.cache.Set(key, rows, ttlcache.DefaultTTL)
	db.cacheKeys[key] = struct{}{}
	db.queries++
	db.reads++
	db.totalLatency += time.Since(start)
	return rows, nil
}

// Exec runs a write statement. It always hits storage and, on success,
// clears the entire read cache.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (dbinterface.Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.active {
		return dbinterface.Result{}, NewError(KindNotInitialized, "database.Exec", "database not initialized", nil)
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return dbinterface.Result{}, NewError(KindExec, "database.Exec", "statement failed", err)
	}

	db.queries++
	db.totalLatency += time.Since(start)
	db.invalidateLocked()

	// Not every statement yields an insert id or a row count; zero is fine.
	id, _ := res.LastInsertId()
	n, _ := res.RowsAffected()
	return dbinterface.Result{LastInsertID: id, RowsAffected: n}, nil
}

// Transaction opens one underlying transaction and invokes fn with a
// transaction-scoped handle. A nil return from fn commits; any error rolls
// the whole transaction back and is propagated wrapped in a transaction
// error. The read cache is cleared after a successful commit since the
// transaction may have written.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.active {
		return NewError(KindNotInitialized, "database.Transaction", "database not initialized", nil)
	}

	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return NewError(KindTx, "database.Transaction", "begin transaction", err)
	}

	tx := &Tx{tx: sqlTx}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return NewError(KindTx, "database.Transaction", "transaction rolled back", err)
	}

	if err := sqlTx.Commit(); err != nil {
		return NewError(KindTx, "database.Transaction", "commit transaction", err)
	}

	db.invalidateLocked()
	return nil
}

// Close releases the underlying connection and marks the handle closed.
// Close failures are propagated as-is since there is no corrective action.
// Accumulated statistics survive Close.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.active {
		return nil
	}

	db.cache.Close()
	db.cache = nil
	db.cacheKeys = nil
	db.active = false

	err := db.conn.Close()
	db.conn = nil
	return err
}

// invalidateLocked discards every cached read result. Caller holds mu.
func (db *DB) invalidateLocked() {
	for key := range db.cacheKeys {
		db.cache.Delete(key)
	}
	db.cacheKeys = make(map[string]struct{})
	db.lastCleanup = time.Now()
}

func cacheKey(query string, args []any) string {
	return fmt.Sprintf("%s\x1f%v", query, args)
}

// materialize drains driver rows into a cacheable snapshot. BLOB/TEXT
// values arriving as []byte are copied to string so cached rows cannot
// alias driver-owned buffers.
func materialize(rows *sql.Rows, err error) (*dbinterface.Rows, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := &dbinterface.Rows{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out.Values = append(out.Values, values)
	}
	return out, rows.Err()
}
