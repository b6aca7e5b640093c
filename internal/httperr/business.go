package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	CodeClientNotFound    = "client_not_found"
	CodeBarberNotFound    = "barber_not_found"
	CodeLocationNotFound  = "location_not_found"
	CodeSlotTaken         = "slot_taken"
	CodeInvalidInput      = "invalid_input"
	CodeInvalidDateOrTime = "invalid_date_or_time"
)

// ErrStorageUnavailable marca falhas de conexão/commit no armazenamento.
var ErrStorageUnavailable = errors.New("storage_unavailable")

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

// Storage embrulha um erro de driver como ErrStorageUnavailable.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsUniqueViolation reconhece violação de índice único (postgres 23505).
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
