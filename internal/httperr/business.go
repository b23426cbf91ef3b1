package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsAnyBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsUniqueViolation detecta SQLSTATE 23505 (unique_violation) em
// qualquer insert perdido numa corrida check-then-act.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsUniqueConflict detecta violação do índice único de slot
// (corrida perdida entre o check e o insert).
func IsUniqueConflict(err error) bool {
	if err == nil {
		return false
	}

	if IsUniqueViolation(err) {
		return true
	}

	return strings.Contains(err.Error(), "uidx_appointments_user_slot")
}
