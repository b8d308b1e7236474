package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, invoice_id, amount, payment_date, payment_method, custom_method,
	source, notes, created_at, updated_at, created_by`

// Create persists a payment row.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, invoice_id, amount, payment_date, payment_method, custom_method,
			source, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.PaymentDate,
		payment.Method, nullIfEmpty(payment.CustomMethod),
		payment.Source, payment.Notes, payment.CreatedAt, payment.UpdatedAt,
		nullIfEmpty(payment.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID returns a payment, nil when missing.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// Delete removes a payment row permanently.
func (r *PaymentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByInvoice returns the payments of an invoice, newest payment date
// first.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments WHERE invoice_id = $1
		ORDER BY payment_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetAdvanceByInvoice returns the advance-payment row of an invoice, nil
// when there is none.
func (r *PaymentRepo) GetAdvanceByInvoice(invoiceID string) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments WHERE invoice_id = $1 AND source = $2`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, invoiceID, entity.SourceAdvance))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get advance payment: %w", err)
	}
	return p, nil
}

// DeleteAdvanceByInvoice removes the advance rows of an invoice. Deleting
// zero rows is not an error.
func (r *PaymentRepo) DeleteAdvanceByInvoice(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM payments WHERE invoice_id = $1 AND source = $2`,
		invoiceID, entity.SourceAdvance)
	if err != nil {
		return fmt.Errorf("delete advance payment: %w", err)
	}
	return nil
}

// SumByInvoice recomputes the paid total from the payment rows.
func (r *PaymentRepo) SumByInvoice(invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`,
		invoiceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var customMethod, createdBy *string
	err := row.Scan(
		&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method, &customMethod,
		&p.Source, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if customMethod != nil {
		p.CustomMethod = *customMethod
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}
	return &p, nil
}
