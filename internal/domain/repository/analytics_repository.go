package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenuePoint is collected revenue for one calendar month.
type MonthlyRevenuePoint struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// RecentInvoiceRow is one entry of the dashboard recent-invoices widget.
type RecentInvoiceRow struct {
	ID           string
	Type         string
	Number       string
	Date         time.Time
	CustomerName string
	Total        decimal.Decimal
	Status       string
}

// TopCustomerRow is one entry of the dashboard top-customers widget.
type TopCustomerRow struct {
	CustomerID   string
	Name         string
	TotalRevenue decimal.Decimal
	InvoiceCount int64
}

// AnalyticsRepository holds the read-only aggregate queries behind the
// dashboard. Revenue is always measured from payment rows, not invoice
// totals, so it reflects money actually collected.
type AnalyticsRepository interface {
	// GetRevenue sums payment amounts in [start, end) against non-deleted
	// invoices.
	GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// CountInvoicesByType counts non-deleted documents of the given type
	// created in [start, end).
	CountInvoicesByType(ctx context.Context, invoiceType string, start, end time.Time) (int64, error)
	// CountActiveCustomers counts active customers with at least one
	// non-deleted invoice.
	CountActiveCustomers(ctx context.Context) (int64, error)
	// GetMonthlyRevenue groups collected revenue by calendar month over
	// [start, end). Months without payments are absent from the result.
	GetMonthlyRevenue(ctx context.Context, start, end time.Time) ([]MonthlyRevenuePoint, error)
	GetRecentInvoices(ctx context.Context, limit int) ([]RecentInvoiceRow, error)
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerRow, error)
}
