package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeForeignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign_key_violation.
// When constraintName is non-empty the violated constraint must match it as well.
func IsForeignKeyViolation(err error, constraintName string) bool {
	return isPgError(err, codeForeignKeyViolation, constraintName)
}

func isPgError(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
