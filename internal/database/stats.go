// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Stats is a best-effort snapshot of handle usage.
type Stats struct {
	TotalQueries int64            `json:"totalQueries"`
	CacheHits    int64            `json:"cacheHits"`
	CacheHitRate float64          `json:"cacheHitRate"`
	AvgLatency   time.Duration    `json:"avgLatency"`
	TableCounts  map[string]int64 `json:"tableCounts"`
	LastCleanup  time.Time        `json:"lastCleanup"`
}

// Stats returns aggregate usage counters plus approximate per-table row
// counts read from the sqlite_master catalog. Statistics are advisory: any
// sub-statistic that cannot be computed is reported as zero/empty instead
// of failing the call.
func (db *DB) Stats(ctx context.Context) Stats {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := Stats{
		TotalQueries: db.queries,
		CacheHits:    db.cacheHits,
		TableCounts:  make(map[string]int64),
		LastCleanup:  db.lastCleanup,
	}
	// The hit rate is over reads only; writes never consult the cache and
	// must not dilute it.
	if db.reads > 0 {
		s.CacheHitRate = float64(db.cacheHits) / float64(db.reads)
	}
	if db.queries > 0 {
		s.AvgLatency = db.totalLatency / time.Duration(db.queries)
	}

	if !db.active {
		return s
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		log.Debug().Err(err).Msg("stats: catalog query failed")
		return s
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Debug().Err(err).Msg("stats: catalog scan failed")
			return s
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		log.Debug().Err(err).Msg("stats: catalog iteration failed")
		return s
	}

	for _, table := range tables {
		var count int64
		// Table names come from the catalog, not from callers.
		row := db.conn.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table))
		if err := row.Scan(&count); err != nil {
			log.Debug().Err(err).Str("table", table).Msg("stats: row count failed")
			count = 0
		}
		s.TableCounts[table] = count
	}

	return s
}
