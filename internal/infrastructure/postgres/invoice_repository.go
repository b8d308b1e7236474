package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx). Line
// items live as a JSONB array on the invoice row.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, type, number, date, customer_id, items,
	subtotal, discount_type, discount_value, discount_amount, total,
	previous, paid, total_paid, balance,
	status, converted_to_invoice_id, notes,
	created_at, updated_at, created_by, deleted_at`

// Create persists a new invoice or quotation.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO invoices (id, type, number, date, customer_id, items,
			subtotal, discount_type, discount_value, discount_amount, total,
			previous, paid, total_paid, balance,
			status, converted_to_invoice_id, notes,
			created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Type, invoice.Number, invoice.Date, invoice.CustomerID, items,
		invoice.Subtotal, invoice.DiscountType, invoice.DiscountValue, invoice.DiscountAmount, invoice.Total,
		invoice.Previous, invoice.Paid, invoice.TotalPaid, invoice.Balance,
		invoice.Status, nullIfEmpty(invoice.ConvertedToInvoiceID), invoice.Notes,
		invoice.CreatedAt, invoice.UpdatedAt, nullIfEmpty(invoice.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update rewrites every mutable field, including derived totals and status.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		UPDATE invoices
		SET type = $2, number = $3, date = $4, customer_id = $5, items = $6,
		    subtotal = $7, discount_type = $8, discount_value = $9, discount_amount = $10, total = $11,
		    previous = $12, paid = $13, total_paid = $14, balance = $15,
		    status = $16, converted_to_invoice_id = $17, notes = $18, updated_at = $19
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Type, invoice.Number, invoice.Date, invoice.CustomerID, items,
		invoice.Subtotal, invoice.DiscountType, invoice.DiscountValue, invoice.DiscountAmount, invoice.Total,
		invoice.Previous, invoice.Paid, invoice.TotalPaid, invoice.Balance,
		invoice.Status, nullIfEmpty(invoice.ConvertedToInvoiceID), invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a full invoice. Returns nil without error when missing or
// soft-deleted.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoices WHERE id = $1 AND deleted_at IS NULL`
	return r.getOne(query, id)
}

// GetByIDForUpdate fetches like GetByID and locks the row for the rest of
// the transaction. Only meaningful when the repo is bound to a tx.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoices WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.getOne(query, id)
}

func (r *InvoiceRepo) getOne(query, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List returns all non-deleted invoices with the customer name joined,
// newest first.
func (r *InvoiceRepo) List() ([]repository.InvoiceListRow, error) {
	query := `
		SELECT i.id, i.type, i.number, i.date, i.customer_id, i.items,
		       i.subtotal, i.discount_type, i.discount_value, i.discount_amount, i.total,
		       i.previous, i.paid, i.total_paid, i.balance,
		       i.status, i.converted_to_invoice_id, i.notes,
		       i.created_at, i.updated_at, i.created_by, i.deleted_at,
		       COALESCE(c.name, ''), COALESCE(c.company_name, '')
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.deleted_at IS NULL
		ORDER BY i.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []repository.InvoiceListRow
	for rows.Next() {
		var listRow repository.InvoiceListRow
		inv, err := scanInvoiceRow(rows, &listRow.CustomerName, &listRow.CustomerCompany)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		listRow.Invoice = *inv
		list = append(list, listRow)
	}
	return list, rows.Err()
}

// UpdateStatus changes only the status column.
func (r *InvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := `
		UPDATE invoices SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete hides the invoice from all reads. Payment rows stay untouched.
func (r *InvoiceRepo) SoftDelete(id string, deletedAt time.Time) error {
	query := `
		UPDATE invoices SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanInvoice reads one invoice from a row of invoiceColumns.
func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	return scanInvoiceFrom(row.Scan)
}

// scanInvoiceRow reads one invoice plus the trailing joined columns.
func scanInvoiceRow(rows pgx.Rows, extra ...any) (*entity.Invoice, error) {
	return scanInvoiceFrom(func(dest ...any) error {
		return rows.Scan(append(dest, extra...)...)
	})
}

func scanInvoiceFrom(scan func(dest ...any) error) (*entity.Invoice, error) {
	var inv entity.Invoice
	var itemsJSON []byte
	var convertedTo, createdBy *string
	err := scan(
		&inv.ID, &inv.Type, &inv.Number, &inv.Date, &inv.CustomerID, &itemsJSON,
		&inv.Subtotal, &inv.DiscountType, &inv.DiscountValue, &inv.DiscountAmount, &inv.Total,
		&inv.Previous, &inv.Paid, &inv.TotalPaid, &inv.Balance,
		&inv.Status, &convertedTo, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt, &createdBy, &inv.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if convertedTo != nil {
		inv.ConvertedToInvoiceID = *convertedTo
	}
	if createdBy != nil {
		inv.CreatedBy = *createdBy
	}
	return &inv, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
