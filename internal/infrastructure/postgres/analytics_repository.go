package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo holds the read-only aggregate queries behind the dashboard.
// It always runs on the pool; dashboard reads never join a transaction.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the adapter on the pool.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenue sums payments collected in [start, end) against non-deleted
// invoices. Revenue is measured from payments, not invoice totals.
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.deleted_at IS NULL
		  AND p.payment_date >= $1 AND p.payment_date < $2`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	return sum, nil
}

// CountInvoicesByType counts non-deleted documents of one type created in
// [start, end).
func (r *AnalyticsRepo) CountInvoicesByType(ctx context.Context, invoiceType string, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM invoices
		WHERE deleted_at IS NULL AND type = $1
		  AND created_at >= $2 AND created_at < $3`
	var n int64
	if err := r.pool.QueryRow(ctx, query, invoiceType, start, end).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// CountActiveCustomers counts active customers with at least one non-deleted
// invoice.
func (r *AnalyticsRepo) CountActiveCustomers(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT c.id)
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id AND i.deleted_at IS NULL
		WHERE c.deleted_at IS NULL AND c.is_active`
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active customers: %w", err)
	}
	return n, nil
}

// GetMonthlyRevenue groups collected revenue by calendar month over
// [start, end). Months without payments are absent; the use case gap-fills.
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context, start, end time.Time) ([]repository.MonthlyRevenuePoint, error) {
	query := `
		SELECT DATE_TRUNC('month', p.payment_date) AS month, SUM(p.amount)
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.deleted_at IS NULL
		  AND p.payment_date >= $1 AND p.payment_date < $2
		GROUP BY month
		ORDER BY month`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var points []repository.MonthlyRevenuePoint
	for rows.Next() {
		var p repository.MonthlyRevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetRecentInvoices returns the latest non-deleted invoices with customer
// names.
func (r *AnalyticsRepo) GetRecentInvoices(ctx context.Context, limit int) ([]repository.RecentInvoiceRow, error) {
	query := `
		SELECT i.id, i.type, i.number, i.date, COALESCE(c.name, ''), i.total, i.status
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.deleted_at IS NULL
		ORDER BY i.created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent invoices: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentInvoiceRow
	for rows.Next() {
		var row repository.RecentInvoiceRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Number, &row.Date, &row.CustomerName, &row.Total, &row.Status); err != nil {
			return nil, fmt.Errorf("scan recent invoice: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetTopCustomers ranks customers by revenue actually collected from their
// invoices.
func (r *AnalyticsRepo) GetTopCustomers(ctx context.Context, limit int) ([]repository.TopCustomerRow, error) {
	query := `
		SELECT c.id, c.name,
		       COALESCE(SUM(p.amount), 0) AS revenue,
		       COUNT(DISTINCT i.id) AS invoice_count
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id AND i.deleted_at IS NULL AND i.type = $1
		LEFT JOIN payments p ON p.invoice_id = i.id
		WHERE c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, entity.TypeInvoice, limit)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer rows.Close()

	var list []repository.TopCustomerRow
	for rows.Next() {
		var row repository.TopCustomerRow
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.TotalRevenue, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("scan top customer: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
