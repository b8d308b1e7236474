package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/application/dto"
	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/money"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// LedgerUseCase owns every mutation of an invoice's financial fields:
// creation, revision, payments, payment removal and quotation conversion.
// All derived fields (subtotal, discountAmount, total, totalPaid, balance)
// are written here and nowhere else, so balance = total + previous -
// totalPaid holds after each operation.
type LedgerUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewLedgerUseCase builds the ledger.
func NewLedgerUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// Create persists a new invoice or quotation in draft. An advance payment
// declared at creation seeds totalPaid and is mirrored as a payment row with
// source = advance, dated at the invoice date, method cash.
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	invoiceType := in.Type
	if invoiceType == "" {
		invoiceType = entity.TypeInvoice
	}
	if invoiceType != entity.TypeInvoice && invoiceType != entity.TypeQuotation {
		return nil, domain.ErrInvalidInput
	}
	date := parseDateOr(in.Date, now)
	number := in.Number
	if number == "" {
		number = GenerateNumber(invoiceType, now)
	}

	items := toItems(in.Items)
	discountType := in.DiscountType
	if discountType == "" {
		discountType = entity.DiscountPercentage
	}
	subtotal := money.ComputeSubtotal(items)
	discountAmount := money.ComputeDiscountAmount(subtotal, discountType, in.DiscountValue)
	total := money.ComputeTotal(subtotal, discountAmount)
	// balance = total + previous - advance; advance seeds totalPaid
	balance := total.Add(in.Previous).Sub(in.AdvancePayment)

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		Type:           invoiceType,
		Number:         number,
		Date:           date,
		CustomerID:     in.CustomerID,
		Items:          items,
		Subtotal:       subtotal,
		DiscountType:   discountType,
		DiscountValue:  in.DiscountValue,
		DiscountAmount: discountAmount,
		Total:          total,
		Previous:       in.Previous,
		Paid:           in.AdvancePayment,
		TotalPaid:      in.AdvancePayment,
		Balance:        balance,
		Status:         entity.StatusDraft,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		if inv.Paid.IsPositive() {
			return paymentRepo.Create(uc.advanceRow(inv, inv.Paid, entity.SourceAdvance, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customer, nil), nil
}

// Revise replaces the editable fields of an invoice and recomputes its
// totals. The advance-payment component of totalPaid is swapped for the new
// amount while every other ledgered payment is preserved:
//
//	newTotalPaid = currentTotalPaid - currentAdvance + newAdvance
//
// Status is taken verbatim from the request when present and kept unchanged
// otherwise; a plain edit never re-derives it.
func (uc *LedgerUseCase) Revise(ctx context.Context, id string, in dto.ReviseInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.StatusConverted {
			return fmt.Errorf("%w: converted quotations are frozen", domain.ErrInvalidInput)
		}

		now := time.Now()
		currentAdvance := inv.Paid
		advanceChanged := !currentAdvance.Equal(in.AdvancePayment)

		if in.CustomerID != "" {
			inv.CustomerID = in.CustomerID
		}
		if in.Number != "" {
			inv.Number = in.Number
		}
		inv.Date = parseDateOr(in.Date, inv.Date)
		inv.Items = toItems(in.Items)
		if in.DiscountType != "" {
			inv.DiscountType = in.DiscountType
		}
		inv.DiscountValue = in.DiscountValue
		inv.Previous = in.Previous
		inv.Paid = in.AdvancePayment

		inv.Subtotal = money.ComputeSubtotal(inv.Items)
		inv.DiscountAmount = money.ComputeDiscountAmount(inv.Subtotal, inv.DiscountType, inv.DiscountValue)
		inv.Total = money.ComputeTotal(inv.Subtotal, inv.DiscountAmount)
		inv.TotalPaid = inv.TotalPaid.Sub(currentAdvance).Add(in.AdvancePayment)
		inv.Balance = inv.Total.Add(inv.Previous).Sub(inv.TotalPaid)
		if in.Status != "" {
			if !validStatus(in.Status) {
				return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
			}
			inv.Status = in.Status
		}
		inv.Notes = in.Notes
		inv.UpdatedAt = now

		if advanceChanged {
			if err := paymentRepo.DeleteAdvanceByInvoice(inv.ID); err != nil {
				return err
			}
			if in.AdvancePayment.IsPositive() {
				if err := paymentRepo.Create(uc.advanceRow(inv, in.AdvancePayment, entity.SourceAdvance, now)); err != nil {
					return err
				}
			}
		}
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	return toInvoiceResponse(inv, customer, nil), nil
}

// RecordPayment ledgers a payment against an invoice. A payment must be
// positive and may not exceed the outstanding balance; an overpayment is
// rejected with the maximum accepted amount. On success totalPaid and
// balance shift by the amount and the status is re-derived.
func (uc *LedgerUseCase) RecordPayment(ctx context.Context, invoiceID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than 0", domain.ErrInvalidInput)
	}
	method := in.Method
	if method == "" {
		method = entity.MethodCash
	}
	customMethod := ""
	if method == entity.MethodCustom {
		customMethod = in.CustomMethod
	}

	var payment *entity.Payment
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(inv.Balance) {
			return &domain.OverpaymentError{MaxAmount: inv.Balance}
		}

		now := time.Now()
		payment = &entity.Payment{
			ID:           uuid.New().String(),
			InvoiceID:    inv.ID,
			Amount:       in.Amount,
			PaymentDate:  parseDateOr(in.PaymentDate, now),
			Method:       method,
			CustomMethod: customMethod,
			Source:       entity.SourceManual,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		inv.TotalPaid = inv.TotalPaid.Add(in.Amount)
		inv.Balance = inv.Balance.Sub(in.Amount)
		inv.Status = DeriveStatus(inv.Total, inv.TotalPaid, inv.Status)
		inv.UpdatedAt = now
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// DeletePayment removes a ledgered payment and reverses its effect on the
// parent invoice, restoring totalPaid and balance to the exact values they
// had before the payment.
func (uc *LedgerUseCase) DeletePayment(ctx context.Context, paymentID string) error {
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		payment, err := paymentRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		inv, err := invoiceRepo.GetByIDForUpdate(payment.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.Delete(payment.ID); err != nil {
			return err
		}
		inv.TotalPaid = inv.TotalPaid.Sub(payment.Amount)
		inv.Balance = inv.Balance.Add(payment.Amount)
		inv.Status = DeriveStatus(inv.Total, inv.TotalPaid, inv.Status)
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
}

// ConvertQuotation turns an accepted quotation into a real invoice. The new
// invoice copies the quotation's financial fields, starts at status sent and
// inherits the advance payment as a conversion payment row. The quotation is
// frozen as converted in the same transaction.
func (uc *LedgerUseCase) ConvertQuotation(ctx context.Context, quotationID string) (*dto.ConvertQuotationResponse, error) {
	var newInv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		quotation, err := invoiceRepo.GetByIDForUpdate(quotationID)
		if err != nil {
			return err
		}
		if quotation == nil {
			return domain.ErrNotFound
		}
		if quotation.Type != entity.TypeQuotation {
			return fmt.Errorf("%w: only quotations can be converted to invoices", domain.ErrInvalidInput)
		}
		if quotation.Status == entity.StatusConverted {
			return fmt.Errorf("%w: quotation has already been converted", domain.ErrInvalidInput)
		}

		now := time.Now()
		newInv = &entity.Invoice{
			ID:             uuid.New().String(),
			Type:           entity.TypeInvoice,
			Number:         GenerateNumber(entity.TypeInvoice, now),
			Date:           now,
			CustomerID:     quotation.CustomerID,
			Items:          quotation.Items,
			Subtotal:       quotation.Subtotal,
			DiscountType:   quotation.DiscountType,
			DiscountValue:  quotation.DiscountValue,
			DiscountAmount: quotation.DiscountAmount,
			Total:          quotation.Total,
			Previous:       quotation.Previous,
			Paid:           quotation.Paid,
			TotalPaid:      quotation.Paid,
			Balance:        quotation.Total.Add(quotation.Previous).Sub(quotation.Paid),
			Status:         entity.StatusSent, // converted quotations skip draft
			Notes:          quotation.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invoiceRepo.Create(newInv); err != nil {
			return err
		}

		quotation.Status = entity.StatusConverted
		quotation.ConvertedToInvoiceID = newInv.ID
		quotation.UpdatedAt = now
		if err := invoiceRepo.Update(quotation); err != nil {
			return err
		}

		if quotation.Paid.IsPositive() {
			row := uc.advanceRow(newInv, quotation.Paid, entity.SourceConversion, now)
			row.PaymentDate = now
			return paymentRepo.Create(row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ConvertQuotationResponse{InvoiceID: newInv.ID, Number: newInv.Number}, nil
}

// Get returns a full invoice with customer info and its payment history.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.paymentRepo.ListByInvoice(id)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	return toInvoiceResponse(inv, customer, payments), nil
}

// List returns all non-deleted invoices and quotations, newest first.
func (uc *LedgerUseCase) List(ctx context.Context) ([]dto.InvoiceListItem, error) {
	rows, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.InvoiceListItem{
			ID:              row.Invoice.ID,
			Type:            row.Invoice.Type,
			Number:          row.Invoice.Number,
			Date:            row.Invoice.Date.Format("2006-01-02"),
			CustomerID:      row.Invoice.CustomerID,
			CustomerName:    row.CustomerName,
			CustomerCompany: row.CustomerCompany,
			Total:           row.Invoice.Total,
			TotalPaid:       row.Invoice.TotalPaid,
			Balance:         row.Invoice.Balance,
			Status:          row.Invoice.Status,
			CreatedAt:       row.Invoice.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// UpdateStatus applies an explicit status change (cancelled, overdue, ...).
// This is the only path that can set the statuses the deriver never emits.
func (uc *LedgerUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.UpdateStatus(id, status, time.Now())
}

// SoftDelete marks an invoice as deleted without touching its payment rows.
func (uc *LedgerUseCase) SoftDelete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.SoftDelete(id, time.Now())
}

// ── helpers ──────────────────────────────────────────────────────────────────

// advanceRow builds the ledger-generated payment row mirroring an advance
// payment. Dated at the invoice date, method cash.
func (uc *LedgerUseCase) advanceRow(inv *entity.Invoice, amount decimal.Decimal, source string, now time.Time) *entity.Payment {
	notes := entity.NotesAdvanceOnCreate
	if source == entity.SourceConversion {
		notes = entity.NotesAdvanceOnConversion
	}
	return &entity.Payment{
		ID:          uuid.New().String(),
		InvoiceID:   inv.ID,
		Amount:      amount,
		PaymentDate: inv.Date,
		Method:      entity.MethodCash,
		Source:      source,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func validStatus(s string) bool {
	switch s {
	case entity.StatusDraft, entity.StatusSent, entity.StatusPartial, entity.StatusPaid,
		entity.StatusOverdue, entity.StatusCancelled, entity.StatusConverted:
		return true
	}
	return false
}

// parseDateOr parses YYYY-MM-DD, falling back when empty or malformed.
func parseDateOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fallback
	}
	return t
}

func toItems(in []dto.InvoiceItemRequest) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(in))
	for _, it := range in {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		items = append(items, entity.InvoiceItem{
			ID:          id,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			Notes:       it.Notes,
			IsService:   it.IsService,
		})
	}
	return items
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate.Format("2006-01-02"),
		Method:       p.Method,
		CustomMethod: p.CustomMethod,
		Source:       p.Source,
		Notes:        p.Notes,
	}
}

func toInvoiceResponse(inv *entity.Invoice, customer *entity.Customer, payments []*entity.Payment) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                   inv.ID,
		Type:                 inv.Type,
		Number:               inv.Number,
		Date:                 inv.Date.Format("2006-01-02"),
		CustomerID:           inv.CustomerID,
		Items:                inv.Items,
		Subtotal:             inv.Subtotal,
		DiscountType:         inv.DiscountType,
		DiscountValue:        inv.DiscountValue,
		DiscountAmount:       inv.DiscountAmount,
		Total:                inv.Total,
		Previous:             inv.Previous,
		Paid:                 inv.Paid,
		TotalPaid:            inv.TotalPaid,
		Balance:              inv.Balance,
		Status:               inv.Status,
		ConvertedToInvoiceID: inv.ConvertedToInvoiceID,
		Notes:                inv.Notes,
		CreatedAt:            inv.CreatedAt.Format(time.RFC3339),
	}
	if customer != nil {
		resp.CustomerName = customer.Name
		resp.CustomerCompany = customer.CompanyName
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, *toPaymentResponse(p))
	}
	return resp
}
