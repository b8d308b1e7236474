package billing

import (
	"context"

	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one database transaction with
// invoice and payment repositories bound to it. Every multi-statement ledger
// operation goes through here so two concurrent payments against the same
// invoice cannot lose an update.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator renders the printable invoice.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		payments []*entity.Payment,
	) ([]byte, error)
}
