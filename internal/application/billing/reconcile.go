package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/money"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// Drift is a divergence between a stored derived field and the value
// recomputed from its source data.
type Drift struct {
	InvoiceID string
	Number    string
	Field     string // subtotal | discount_amount | total | total_paid | balance
	Stored    decimal.Decimal
	Computed  decimal.Decimal
}

// ReconcileUseCase is the correctness backstop for the redundantly stored
// derived fields. It recomputes subtotal/discountAmount/total from the line
// items, totalPaid from the payment rows and balance from the invariant, and
// reports every mismatch. It never repairs; repairs are a deliberate manual
// step after inspecting the report.
type ReconcileUseCase struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewReconcileUseCase builds the use case.
func NewReconcileUseCase(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) *ReconcileUseCase {
	return &ReconcileUseCase{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// Run checks every non-deleted invoice and returns the drifts found plus the
// number of invoices checked.
func (uc *ReconcileUseCase) Run(ctx context.Context) ([]Drift, int, error) {
	rows, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, 0, err
	}

	var drifts []Drift
	for _, row := range rows {
		inv := row.Invoice

		subtotal := money.ComputeSubtotal(inv.Items)
		discountAmount := money.ComputeDiscountAmount(subtotal, inv.DiscountType, inv.DiscountValue)
		total := money.ComputeTotal(subtotal, discountAmount)

		totalPaid, err := uc.paymentRepo.SumByInvoice(inv.ID)
		if err != nil {
			return nil, 0, err
		}
		balance := total.Add(inv.Previous).Sub(totalPaid)

		drifts = appendDrift(drifts, inv.ID, inv.Number, "subtotal", inv.Subtotal, subtotal)
		drifts = appendDrift(drifts, inv.ID, inv.Number, "discount_amount", inv.DiscountAmount, discountAmount)
		drifts = appendDrift(drifts, inv.ID, inv.Number, "total", inv.Total, total)
		drifts = appendDrift(drifts, inv.ID, inv.Number, "total_paid", inv.TotalPaid, totalPaid)
		drifts = appendDrift(drifts, inv.ID, inv.Number, "balance", inv.Balance, balance)
	}
	return drifts, len(rows), nil
}

func appendDrift(drifts []Drift, id, number, field string, stored, computed decimal.Decimal) []Drift {
	if stored.Equal(computed) {
		return drifts
	}
	return append(drifts, Drift{InvoiceID: id, Number: number, Field: field, Stored: stored, Computed: computed})
}
