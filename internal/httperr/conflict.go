package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE do Postgres para colisão de escrita concorrente.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict identifica corrida perdida no insert de reserva:
// o índice único parcial sobre as reservas não canceladas
// (shop_id, booking_date, start_time) barrou a segunda escrita.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
