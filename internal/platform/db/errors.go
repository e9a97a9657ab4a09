package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint violation SQLSTATE codes surfaced to users.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ConstraintMessage unwraps constraint violations to the bare server message
// so the text reaches the user verbatim, without driver framing. Other errors
// pass through unchanged.
func ConstraintMessage(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			return errors.New(pgErr.Message)
		}
	}
	return err
}
