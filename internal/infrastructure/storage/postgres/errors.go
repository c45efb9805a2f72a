package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"kiranabook/internal/core/apperror"
)

// PostgreSQL error codes mapped at the repository boundary.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// MapConstraintError converts PostgreSQL constraint violations into the
// service error taxonomy. Returns nil when err is not a constraint
// violation, so callers can fall through to generic wrapping.
func MapConstraintError(err error, entity string, entityID any) *apperror.AppError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return apperror.NewReferenceProtected(entity, entityID).WithCause(err)
	case pgUniqueViolation:
		return apperror.NewDuplicate(entity, "name", "").
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return nil
}
