package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation código, email o id repetido.
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isCheckViolation por ejemplo current_stock < 0.
func isCheckViolation(err error) bool { return pgCode(err) == codeCheckViolation }
