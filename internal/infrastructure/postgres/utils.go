package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/blockvisor-setup/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrNotNullViolation    = "23502"
	pgErrCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapErr agrega la operación y el tipo de dominio: violaciones de integridad -> ErrConstraintViolation,
// cualquier otro fallo -> ErrTransactionFailure.
func wrapErr(op string, err error) error {
	switch pgCode(err) {
	case pgErrUniqueViolation, pgErrForeignKeyViolation, pgErrNotNullViolation, pgErrCheckViolation:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransactionFailure, err)
	}
}
