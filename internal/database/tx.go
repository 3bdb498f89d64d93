// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package database

import (
	"context"
	"database/sql"

	"github.com/gizitrack/gizitrack/internal/dbinterface"
)

// Tx is a transaction-scoped handle. It is the only valid access path to
// the database while its transaction is open. Tx reads bypass the result
// cache: a transaction must observe its own uncommitted writes.
type Tx struct {
	tx *sql.Tx
}

// Query runs a read statement inside the transaction.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*dbinterface.Rows, error) {
	rows, err := materialize(t.tx.QueryContext(ctx, query, args...))
	if err != nil {
		return nil, NewError(KindQuery, "database.Tx.Query", "query failed", err)
	}
	return rows, nil
}

// Exec runs a write statement inside the transaction.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (dbinterface.Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return dbinterface.Result{}, NewError(KindExec, "database.Tx.Exec", "statement failed", err)
	}

	id, _ := res.LastInsertId()
	n, _ := res.RowsAffected()
	return dbinterface.Result{LastInsertID: id, RowsAffected: n}, nil
}
