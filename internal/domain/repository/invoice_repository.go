package repository

import (
	"time"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// InvoiceListRow is one row of the invoice list (joined customer name).
type InvoiceListRow struct {
	Invoice         entity.Invoice
	CustomerName    string
	CustomerCompany string
}

// InvoiceRepository is the persistence port for invoices and quotations.
// Reads exclude soft-deleted rows.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	// Update rewrites every mutable field of the invoice row, including the
	// derived financial fields and status.
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate locks the invoice row for the remainder of the
	// transaction. Only meaningful on a repository bound to a tx.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	List() ([]InvoiceListRow, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	SoftDelete(id string, deletedAt time.Time) error
}
