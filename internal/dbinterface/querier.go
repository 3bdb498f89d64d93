// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package dbinterface holds the types shared between the database layer and
// the stores built on top of it. It exists to avoid import cycles: stores
// accept a Querier and never import the concrete database package.
package dbinterface

import "context"

// Result describes the outcome of a write statement.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Rows is a fully materialized read result. Materializing makes results
// safe to cache and to return repeatedly without holding driver resources.
type Rows struct {
	Columns []string
	Values  [][]any
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Values)
}

// Map returns row i as a column-name keyed map. It panics if i is out of
// range, matching slice indexing semantics.
func (r *Rows) Map(i int) map[string]any {
	row := r.Values[i]
	m := make(map[string]any, len(r.Columns))
	for c, name := range r.Columns {
		m[name] = row[c]
	}
	return m
}

// Querier is the centralized interface for database operations. It is
// implemented by *database.DB and *database.Tx, which lets stores run both
// standalone and inside a transaction without code duplication.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}
