// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package metrics exposes database usage statistics to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gizitrack/gizitrack/internal/database"
)

const collectTimeout = 5 * time.Second

// DBCollector exports database.Stats as Prometheus metrics. Stats are
// best-effort by contract, so collection never fails.
type DBCollector struct {
	db *database.DB

	totalQueriesDesc *prometheus.Desc
	cacheHitsDesc    *prometheus.Desc
	cacheHitRateDesc *prometheus.Desc
	tableRowsDesc    *prometheus.Desc
}

func NewDBCollector(db *database.DB) *DBCollector {
	return &DBCollector{
		db: db,
		totalQueriesDesc: prometheus.NewDesc(
			"gizitrack_db_queries_total",
			"Total statements issued against the database",
			nil, nil,
		),
		cacheHitsDesc: prometheus.NewDesc(
			"gizitrack_db_cache_hits_total",
			"Read queries served from the result cache",
			nil, nil,
		),
		cacheHitRateDesc: prometheus.NewDesc(
			"gizitrack_db_cache_hit_rate",
			"Fraction of reads served from the result cache",
			nil, nil,
		),
		tableRowsDesc: prometheus.NewDesc(
			"gizitrack_db_table_rows",
			"Approximate row count per table",
			[]string{"table"}, nil,
		),
	}
}

func (c *DBCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalQueriesDesc
	ch <- c.cacheHitsDesc
	ch <- c.cacheHitRateDesc
	ch <- c.tableRowsDesc
}

func (c *DBCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats := c.db.Stats(ctx)

	ch <- prometheus.MustNewConstMetric(c.totalQueriesDesc, prometheus.CounterValue, float64(stats.TotalQueries))
	ch <- prometheus.MustNewConstMetric(c.cacheHitsDesc, prometheus.CounterValue, float64(stats.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.cacheHitRateDesc, prometheus.GaugeValue, stats.CacheHitRate)
	for table, count := range stats.TableCounts {
		ch <- prometheus.MustNewConstMetric(c.tableRowsDesc, prometheus.GaugeValue, float64(count), table)
	}
}
