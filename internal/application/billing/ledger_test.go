package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/application/dto"
	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes. They copy entities on read and write so the ledger only
// changes stored state through explicit Create/Update calls, like a real
// database would.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	invoices  map[string]*entity.Invoice
	payments  map[string]*entity.Payment
	customers map[string]*entity.Customer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invoices:  map[string]*entity.Invoice{},
		payments:  map[string]*entity.Payment{},
		customers: map[string]*entity.Customer{},
	}
}

func copyInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &cp
}

type fakeInvoiceRepo struct{ s *fakeStore }

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) List() ([]repository.InvoiceListRow, error) {
	var rows []repository.InvoiceListRow
	for _, inv := range r.s.invoices {
		if inv.DeletedAt != nil {
			continue
		}
		row := repository.InvoiceListRow{Invoice: *copyInvoice(inv)}
		if c, ok := r.s.customers[inv.CustomerID]; ok {
			row.CustomerName = c.Name
			row.CustomerCompany = c.CompanyName
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *fakeInvoiceRepo) SoftDelete(id string, deletedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.DeletedAt = &deletedAt
	return nil
}

type fakePaymentRepo struct{ s *fakeStore }

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) Delete(id string) error {
	delete(r.s.payments, id)
	return nil
}

func (r *fakePaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetAdvanceByInvoice(invoiceID string) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID && p.Source == entity.SourceAdvance {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) DeleteAdvanceByInvoice(invoiceID string) error {
	for id, p := range r.s.payments {
		if p.InvoiceID == invoiceID && p.Source == entity.SourceAdvance {
			delete(r.s.payments, id)
		}
	}
	return nil
}

func (r *fakePaymentRepo) SumByInvoice(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

type fakeCustomerRepo struct{ s *fakeStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List() ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.DeletedAt == nil {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) SoftDelete(id string, deletedAt time.Time) error {
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.DeletedAt = &deletedAt
	return nil
}

// fakeTxRunner runs the callback directly against the store. Atomicity is
// not simulated; these tests exercise ledger arithmetic, not rollback.
type fakeTxRunner struct{ s *fakeStore }

var _ billing.BillingTxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(&fakeInvoiceRepo{r.s}, &fakePaymentRepo{r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testCustomerID = "cust-1"

func newLedger(t *testing.T) (*billing.LedgerUseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.customers[testCustomerID] = &entity.Customer{ID: testCustomerID, Name: "Ahmed Khan", Phone: "0300-0000000", IsActive: true}
	uc := billing.NewLedgerUseCase(&fakeTxRunner{s}, &fakeInvoiceRepo{s}, &fakePaymentRepo{s}, &fakeCustomerRepo{s})
	return uc, s
}

func createReq(amounts ...string) dto.CreateInvoiceRequest {
	items := make([]dto.InvoiceItemRequest, 0, len(amounts))
	for _, a := range amounts {
		items = append(items, dto.InvoiceItemRequest{
			Description: "AC service",
			Quantity:    decimal.NewFromInt(1),
			Rate:        d(a),
			Amount:      d(a),
		})
	}
	return dto.CreateInvoiceRequest{CustomerID: testCustomerID, Items: items}
}

// checkInvariant asserts balance = total + previous - totalPaid and that
// totalPaid matches the sum of the payment rows.
func checkInvariant(t *testing.T, s *fakeStore, invoiceID string) {
	t.Helper()
	inv := s.invoices[invoiceID]
	require.NotNil(t, inv)
	want := inv.Total.Add(inv.Previous).Sub(inv.TotalPaid)
	assert.True(t, inv.Balance.Equal(want),
		"balance %s != total %s + previous %s - totalPaid %s", inv.Balance, inv.Total, inv.Previous, inv.TotalPaid)

	sum, err := (&fakePaymentRepo{s}).SumByInvoice(invoiceID)
	require.NoError(t, err)
	assert.True(t, inv.TotalPaid.Equal(sum), "totalPaid %s != payment rows sum %s", inv.TotalPaid, sum)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_WithDiscountAndAdvance(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("1000")
	req.DiscountType = entity.DiscountPercentage
	req.DiscountValue = d("10")
	req.AdvancePayment = d("200")

	resp, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(d("1000")))
	assert.True(t, resp.DiscountAmount.Equal(d("100")))
	assert.True(t, resp.Total.Equal(d("900")))
	assert.True(t, resp.TotalPaid.Equal(d("200")))
	assert.True(t, resp.Balance.Equal(d("700")))
	assert.Equal(t, entity.StatusDraft, resp.Status)
	assert.Equal(t, "Ahmed Khan", resp.CustomerName)

	// The advance is mirrored as a ledgered payment row.
	advance, err := (&fakePaymentRepo{s}).GetAdvanceByInvoice(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, advance)
	assert.True(t, advance.Amount.Equal(d("200")))
	assert.Equal(t, entity.MethodCash, advance.Method)
	assert.Equal(t, entity.NotesAdvanceOnCreate, advance.Notes)

	checkInvariant(t, s, resp.ID)
}

func TestCreate_NoAdvanceMeansNoPaymentRow(t *testing.T) {
	uc, s := newLedger(t)

	resp, err := uc.Create(context.Background(), createReq("500"))
	require.NoError(t, err)

	assert.True(t, resp.TotalPaid.IsZero())
	assert.True(t, resp.Balance.Equal(d("500")))
	assert.Empty(t, s.payments)
	checkInvariant(t, s, resp.ID)
}

func TestCreate_ValueDiscountExceedingSubtotal(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("100")
	req.DiscountType = entity.DiscountValue
	req.DiscountValue = d("150")

	// Permissive on purpose: no clamp, the total goes negative.
	resp, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("-50")))
	assert.True(t, resp.Balance.Equal(d("-50")))
	checkInvariant(t, s, resp.ID)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	uc, _ := newLedger(t)
	req := createReq("100")
	req.CustomerID = "missing"
	_, err := uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_RequiresItems(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{CustomerID: testCustomerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPayment / DeletePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_SettlesInvoice(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("1000")
	req.DiscountValue = d("10")
	req.AdvancePayment = d("200")
	inv, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	// Payments never reclassify a draft; move it to sent first.
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusSent))

	payment, err := uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{
		Amount:      d("700"),
		PaymentDate: "2026-09-01",
		Method:      entity.MethodOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceManual, payment.Source)

	stored := s.invoices[inv.ID]
	assert.True(t, stored.TotalPaid.Equal(d("900")))
	assert.True(t, stored.Balance.IsZero())
	assert.Equal(t, entity.StatusPaid, stored.Status)
	checkInvariant(t, s, inv.ID)
}

func TestRecordPayment_DraftStatusIsSticky(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("1000"))
	require.NoError(t, err)

	_, err = uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("400")})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDraft, s.invoices[inv.ID].Status)
	checkInvariant(t, s, inv.ID)
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("100"))
	require.NoError(t, err)
	_, err = uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("100")})
	require.NoError(t, err)

	// Balance is now zero; any further payment overpays.
	_, err = uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("50")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var overpay *domain.OverpaymentError
	require.ErrorAs(t, err, &overpay)
	assert.True(t, overpay.MaxAmount.IsZero())

	// Totals untouched by the rejected payment.
	stored := s.invoices[inv.ID]
	assert.True(t, stored.TotalPaid.Equal(d("100")))
	assert.True(t, stored.Balance.IsZero())
	checkInvariant(t, s, inv.ID)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	uc, _ := newLedger(t)
	for _, amount := range []string{"0", "-10"} {
		_, err := uc.RecordPayment(context.Background(), "any", dto.RecordPaymentRequest{Amount: d(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRecordPayment_UnknownInvoice(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.RecordPayment(context.Background(), "missing", dto.RecordPaymentRequest{Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// RecordPayment followed by DeletePayment restores totalPaid and balance to
// the exact same decimal representation.
func TestDeletePayment_RoundTripRestoresExactState(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("333.33")
	req.AdvancePayment = d("0.01")
	inv, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusSent))

	before := s.invoices[inv.ID]
	beforePaid := before.TotalPaid.String()
	beforeBalance := before.Balance.String()
	beforeStatus := before.Status

	payment, err := uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("111.11")})
	require.NoError(t, err)
	require.NoError(t, uc.DeletePayment(context.Background(), payment.ID))

	after := s.invoices[inv.ID]
	assert.Equal(t, beforePaid, after.TotalPaid.String())
	assert.Equal(t, beforeBalance, after.Balance.String())
	assert.Equal(t, beforeStatus, after.Status)
	checkInvariant(t, s, inv.ID)
}

func TestDeletePayment_ReclassifiesStatus(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("900"))
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusSent))

	p1, err := uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("400")})
	require.NoError(t, err)
	p2, err := uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("500")})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, s.invoices[inv.ID].Status)

	require.NoError(t, uc.DeletePayment(context.Background(), p2.ID))
	assert.Equal(t, entity.StatusPartial, s.invoices[inv.ID].Status)

	require.NoError(t, uc.DeletePayment(context.Background(), p1.ID))
	assert.Equal(t, entity.StatusSent, s.invoices[inv.ID].Status)
	checkInvariant(t, s, inv.ID)
}

func TestDeletePayment_UnknownPayment(t *testing.T) {
	uc, _ := newLedger(t)
	assert.ErrorIs(t, uc.DeletePayment(context.Background(), "missing"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revise
// ──────────────────────────────────────────────────────────────────────────────

func reviseReqFrom(req dto.CreateInvoiceRequest) dto.ReviseInvoiceRequest {
	return dto.ReviseInvoiceRequest{
		Items:          req.Items,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		Previous:       req.Previous,
		AdvancePayment: req.AdvancePayment,
	}
}

func TestRevise_ReplacesAdvanceKeepsOtherPayments(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("1000")
	req.AdvancePayment = d("200")
	inv, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusSent))

	_, err = uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("100")})
	require.NoError(t, err)
	// totalPaid = 200 advance + 100 manual

	rev := reviseReqFrom(req)
	rev.AdvancePayment = d("300")
	resp, err := uc.Revise(context.Background(), inv.ID, rev)
	require.NoError(t, err)

	// newTotalPaid = 300 - 200 + 300 = 400
	assert.True(t, resp.TotalPaid.Equal(d("400")))
	assert.True(t, resp.Balance.Equal(d("600")))

	advance, err := (&fakePaymentRepo{s}).GetAdvanceByInvoice(inv.ID)
	require.NoError(t, err)
	require.NotNil(t, advance)
	assert.True(t, advance.Amount.Equal(d("300")))
	checkInvariant(t, s, inv.ID)
}

func TestRevise_RemovingAdvanceDeletesItsRow(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("1000")
	req.AdvancePayment = d("200")
	inv, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	rev := reviseReqFrom(req)
	rev.AdvancePayment = decimal.Zero
	resp, err := uc.Revise(context.Background(), inv.ID, rev)
	require.NoError(t, err)

	assert.True(t, resp.TotalPaid.IsZero())
	advance, err := (&fakePaymentRepo{s}).GetAdvanceByInvoice(inv.ID)
	require.NoError(t, err)
	assert.Nil(t, advance)
	checkInvariant(t, s, inv.ID)
}

func TestRevise_PlainEditKeepsStatus(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("1000"))
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusOverdue))

	rev := reviseReqFrom(createReq("1200"))
	_, err = uc.Revise(context.Background(), inv.ID, rev)
	require.NoError(t, err)

	// An edit never re-derives status, even though totals changed.
	assert.Equal(t, entity.StatusOverdue, s.invoices[inv.ID].Status)
	assert.True(t, s.invoices[inv.ID].Total.Equal(d("1200")))
	checkInvariant(t, s, inv.ID)
}

func TestRevise_ExplicitStatusWins(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("1000"))
	require.NoError(t, err)

	rev := reviseReqFrom(createReq("1000"))
	rev.Status = entity.StatusSent
	_, err = uc.Revise(context.Background(), inv.ID, rev)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, s.invoices[inv.ID].Status)

	rev.Status = "bogus"
	_, err = uc.Revise(context.Background(), inv.ID, rev)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRevise_UnknownInvoice(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Revise(context.Background(), "missing", reviseReqFrom(createReq("10")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConvertQuotation
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertQuotation(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("500")
	req.Type = entity.TypeQuotation
	req.AdvancePayment = d("100")
	quotation, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	resp, err := uc.ConvertQuotation(context.Background(), quotation.ID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.InvoiceID)
	assert.Regexp(t, `^INV-\d{6}-\d{3}$`, resp.Number)

	newInv := s.invoices[resp.InvoiceID]
	require.NotNil(t, newInv)
	assert.Equal(t, entity.TypeInvoice, newInv.Type)
	assert.Equal(t, entity.StatusSent, newInv.Status)
	assert.True(t, newInv.Total.Equal(d("500")))
	assert.True(t, newInv.TotalPaid.Equal(d("100")))
	assert.True(t, newInv.Balance.Equal(d("400")))

	frozen := s.invoices[quotation.ID]
	assert.Equal(t, entity.StatusConverted, frozen.Status)
	assert.Equal(t, resp.InvoiceID, frozen.ConvertedToInvoiceID)

	// The advance moved to the new invoice as a conversion payment row.
	var conversion *entity.Payment
	for _, p := range s.payments {
		if p.InvoiceID == resp.InvoiceID && p.Source == entity.SourceConversion {
			conversion = p
		}
	}
	require.NotNil(t, conversion)
	assert.True(t, conversion.Amount.Equal(d("100")))
	assert.Equal(t, entity.NotesAdvanceOnConversion, conversion.Notes)

	checkInvariant(t, s, resp.InvoiceID)
}

func TestConvertQuotation_RejectsInvoices(t *testing.T) {
	uc, _ := newLedger(t)
	inv, err := uc.Create(context.Background(), createReq("100"))
	require.NoError(t, err)

	_, err = uc.ConvertQuotation(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvertQuotation_RejectsDoubleConversion(t *testing.T) {
	uc, _ := newLedger(t)
	req := createReq("100")
	req.Type = entity.TypeQuotation
	quotation, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.ConvertQuotation(context.Background(), quotation.ID)
	require.NoError(t, err)
	_, err = uc.ConvertQuotation(context.Background(), quotation.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvertQuotation_FrozenQuotationCannotBeRevised(t *testing.T) {
	uc, _ := newLedger(t)
	req := createReq("100")
	req.Type = entity.TypeQuotation
	quotation, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.ConvertQuotation(context.Background(), quotation.ID)
	require.NoError(t, err)

	_, err = uc.Revise(context.Background(), quotation.ID, reviseReqFrom(req))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SoftDelete / reconciliation
// ──────────────────────────────────────────────────────────────────────────────

func TestSoftDelete_HidesInvoice(t *testing.T) {
	uc, _ := newLedger(t)
	inv, err := uc.Create(context.Background(), createReq("100"))
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(context.Background(), inv.ID))
	_, err = uc.Get(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile_CleanLedgerHasNoDrift(t *testing.T) {
	uc, s := newLedger(t)

	req := createReq("1000", "250.50")
	req.DiscountValue = d("5")
	req.AdvancePayment = d("100")
	inv, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), inv.ID, entity.StatusSent))
	_, err = uc.RecordPayment(context.Background(), inv.ID, dto.RecordPaymentRequest{Amount: d("50")})
	require.NoError(t, err)

	rec := billing.NewReconcileUseCase(&fakeInvoiceRepo{s}, &fakePaymentRepo{s})
	drifts, checked, err := rec.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	assert.Empty(t, drifts)
}

func TestReconcile_DetectsTamperedBalance(t *testing.T) {
	uc, s := newLedger(t)

	inv, err := uc.Create(context.Background(), createReq("100"))
	require.NoError(t, err)

	// Corrupt the stored balance behind the ledger's back.
	s.invoices[inv.ID].Balance = d("999")

	rec := billing.NewReconcileUseCase(&fakeInvoiceRepo{s}, &fakePaymentRepo{s})
	drifts, _, err := rec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, "balance", drifts[0].Field)
	assert.True(t, drifts[0].Stored.Equal(d("999")))
	assert.True(t, drifts[0].Computed.Equal(d("100")))
}

// Guard against accidentally breaking the error contract: overpayment is a
// validation error, not a conflict or not-found.
func TestOverpaymentError_Unwraps(t *testing.T) {
	err := &domain.OverpaymentError{MaxAmount: d("12.50")}
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "12.50")
}
