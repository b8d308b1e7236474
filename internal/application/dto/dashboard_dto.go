package dto

import "github.com/shopspring/decimal"

// DashboardMetrics are the headline numbers for the selected period.
type DashboardMetrics struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalInvoices   int64           `json:"total_invoices"`
	TotalQuotations int64           `json:"total_quotations"`
	ActiveCustomers int64           `json:"active_customers"`
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Date    string          `json:"date"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
}

// RecentInvoiceDTO is one entry of the recent-invoices widget.
type RecentInvoiceDTO struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Number       string          `json:"number"`
	Date         string          `json:"date"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
}

// TopCustomerDTO is one entry of the top-customers widget.
type TopCustomerDTO struct {
	CustomerID   string          `json:"customer_id"`
	Name         string          `json:"name"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	InvoiceCount int64           `json:"invoice_count"`
}

// DashboardSummaryDTO is the full dashboard payload.
type DashboardSummaryDTO struct {
	Metrics        DashboardMetrics   `json:"metrics"`
	ChartData      []RevenuePoint     `json:"chart_data"`
	RecentInvoices []RecentInvoiceDTO `json:"recent_invoices"`
	TopCustomers   []TopCustomerDTO   `json:"top_customers"`
}
