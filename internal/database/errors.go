// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package database

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a database error. Every error produced by this package
// (and by the migrate package on top of it) carries exactly one Kind.
type Kind int

const (
	// KindNotInitialized means an operation was attempted before Open.
	KindNotInitialized Kind = iota
	// KindConnInit means the underlying open or post-open setup failed.
	KindConnInit
	// KindQuery means a read statement failed.
	KindQuery
	// KindExec means a write statement failed.
	KindExec
	// KindTx means an operation inside a transaction failed and the
	// transaction was rolled back.
	KindTx
	// KindInvalidTarget means a rollback target was not older than the
	// current schema version.
	KindInvalidTarget
)

func (k Kind) String() string {
	switch k {
	case KindNotInitialized:
		return "not_initialized"
	case KindConnInit:
		return "connection_init"
	case KindQuery:
		return "query"
	case KindExec:
		return "exec"
	case KindTx:
		return "transaction"
	case KindInvalidTarget:
		return "invalid_target"
	default:
		return "unknown"
	}
}

// Severity indicates how serious an error is for the caller.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Error is the single error type for the persistence layer. It replaces a
// per-kind type hierarchy with one tagged variant carrying shared metadata.
type Error struct {
	Kind          Kind
	Op            string
	Message       string
	Retryable     bool
	Severity      Severity
	CorrelationID string
	Err           error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError is the single factory for persistence errors. Retryability and
// severity are derived from the kind; cause may be nil.
func NewError(kind Kind, op, message string, cause error) *Error {
	e := &Error{
		Kind:          kind,
		Op:            op,
		Message:       message,
		Severity:      SeverityError,
		CorrelationID: uuid.NewString(),
		Err:           cause,
	}

	switch kind {
	case KindQuery, KindExec, KindTx:
		// Local SQLite contention (SQLITE_BUSY) is transient.
		e.Retryable = true
	case KindConnInit:
		e.Severity = SeverityCritical
	case KindNotInitialized:
		e.Severity = SeverityWarning
	}

	return e
}

// IsKind reports whether err (or anything it wraps) is a persistence Error
// of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
