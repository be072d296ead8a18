package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// conflictConstraints are unique constraints that only fire when two writers
// raced on the same chain. Violations map to ErrConcurrencyConflict instead
// of ErrAlreadyExists.
var conflictConstraints = map[string]struct{}{
	"audit_entries_previous_hash_key":        {},
	"resource_versions_chain_version_key":    {},
	"resource_versions_previous_version_key": {},
	"ux_resource_versions_current":           {},
}

// MapError converts pgx/pgconn errors to domain errors. Exported for
// repositories in sub-packages.
func MapError(err error, entity string, key any) error {
	return mapError(err, entity, key)
}

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func mapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	label := entity
	if s := fmt.Sprint(key); key != nil && s != "" {
		label = entity + " " + s
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", label, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			if _, ok := conflictConstraints[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%s: %s: %w", label, pgErr.ConstraintName, domain.ErrConcurrencyConflict)
			}
			return fmt.Errorf("%s: %w", label, domain.ErrAlreadyExists)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
		case pgErr.Code == "23514": // check_violation
			return fmt.Errorf("%s: %w", label, domain.ErrValidation)
		case pgErr.Code == "23001": // restrict_violation, raised by append-only triggers
			return fmt.Errorf("%s: %s: %w", label, pgErr.Message, domain.ErrConflict)
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s: %w", label, domain.ErrConcurrencyConflict)
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception class
			pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03", // shutdown, cannot_connect_now
			pgErr.Code == "53300": // too_many_connections
			return fmt.Errorf("%s: %w: %v", label, domain.ErrStorageUnavailable, err)
		}
	}

	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", label, domain.ErrStorageUnavailable, err)
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", label, err)
}

// isUnavailable reports whether err means the database could not be reached.
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	// pgxpool reports a closed pool with a plain error.
	return strings.Contains(err.Error(), "closed pool")
}
