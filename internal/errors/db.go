package errors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the column from "Key (email)=(a@x.com) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// MapDBError maps driver errors to AppError values:
//
//	sql.ErrNoRows / pgx.ErrNoRows → NotFound
//	unique violation             → Conflict (with Field when known)
//	foreign key violation        → ForeignKey
//	check / not-null violation   → Validation
//	invalid text representation  → Validation
//	context deadline / cancel    → Timeout / Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}
	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		field := uniqueField(pgErr)
		msg := "This value already exists. Please choose a different one."
		if field == "email" {
			msg = "Email already exists"
		}
		return &AppError{Code: ErrCodeConflict, Message: msg, Field: field, Cause: pgErr}
	case pgerrcode.ForeignKeyViolation:
		return &AppError{
			Code:    ErrCodeForeignKey,
			Message: "Cannot update " + tableDomain(pgErr.TableName) + " because a referenced record does not exist.",
			Cause:   pgErr,
		}
	case pgerrcode.InvalidTextRepresentation:
		return &AppError{Code: ErrCodeValidation, Message: "Invalid identifier.", Cause: pgErr}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		msg := "Invalid data. Please check your input."
		if pgErr.ColumnName != "" {
			msg = "This field has an invalid value."
		}
		return &AppError{Code: ErrCodeValidation, Message: msg, Field: pgErr.ColumnName, Cause: pgErr}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// uniqueField prefers the column metadata, then the detail text, then the
// "<table>_<column>_key" constraint naming convention.
func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	parts := strings.Split(pgErr.ConstraintName, "_")
	if len(parts) == 3 && parts[2] == "key" {
		return parts[1]
	}
	return ""
}

// tableDomain maps table names to the words used in user-facing messages.
func tableDomain(table string) string {
	switch strings.ToLower(strings.TrimSpace(table)) {
	case "users":
		return "user"
	case "groups":
		return "group"
	case "users_groups":
		return "group membership"
	case "roles":
		return "role"
	case "":
		return "item"
	default:
		return strings.ReplaceAll(table, "_", " ")
	}
}
