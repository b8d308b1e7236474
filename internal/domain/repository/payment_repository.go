package repository

import (
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// PaymentRepository is the persistence port for ledgered payments.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	Delete(id string) error
	// ListByInvoice returns the payments of an invoice, newest payment date
	// first.
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
	// GetAdvanceByInvoice returns the advance-payment row of an invoice
	// (source = advance), or nil if none exists.
	GetAdvanceByInvoice(invoiceID string) (*entity.Payment, error)
	DeleteAdvanceByInvoice(invoiceID string) error
	// SumByInvoice recomputes totalPaid from the payment rows. Used by the
	// reconciliation check, never by the ledger hot path.
	SumByInvoice(invoiceID string) (decimal.Decimal, error)
}
