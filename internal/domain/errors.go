package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
)

// OverpaymentError rejects a payment larger than the outstanding balance and
// carries the maximum accepted amount back to the caller.
type OverpaymentError struct {
	MaxAmount decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount cannot exceed outstanding balance (max %s)", e.MaxAmount.StringFixed(2))
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold for overpayments.
func (e *OverpaymentError) Unwrap() error { return ErrInvalidInput }
