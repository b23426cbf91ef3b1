package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("time_conflict")

	if !IsBusiness(err, "time_conflict") {
		t.Error("expected match on own code")
	}
	if IsBusiness(err, "client_not_found") {
		t.Error("matched wrong code")
	}
	if IsBusiness(errors.New("boom"), "time_conflict") {
		t.Error("matched non-business error")
	}
	if IsBusiness(nil, "time_conflict") {
		t.Error("matched nil")
	}

	wrapped := fmt.Errorf("criar agendamento: %w", err)
	if !IsBusiness(wrapped, "time_conflict") {
		t.Error("expected match through wrapping")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uidx_clients_company_phone"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg 23505", unique, true},
		{"pg 23505 embrulhado", fmt.Errorf("insert: %w", unique), true},
		{"pg outro sqlstate", &pgconn.PgError{Code: "23503"}, false},
		{"erro comum", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUniqueConflict(t *testing.T) {
	if !IsUniqueConflict(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected conflict for SQLSTATE 23505")
	}

	// Driver que não expõe PgError ainda cai na checagem pelo nome
	// do índice de slot.
	if !IsUniqueConflict(errors.New(`duplicate key value violates unique constraint "uidx_appointments_user_slot"`)) {
		t.Error("expected conflict by index name")
	}

	if IsUniqueConflict(nil) {
		t.Error("nil is not a conflict")
	}
	if IsUniqueConflict(errors.New("timeout")) {
		t.Error("unrelated error is not a conflict")
	}
}
