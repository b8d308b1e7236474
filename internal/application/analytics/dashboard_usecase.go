// Package analytics contains the read-only use cases behind the revenue
// dashboard.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/application/dto"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

const (
	dashboardRecentInvoices = 10
	dashboardTopCustomers   = 5
	chartMonths             = 12
)

// TimeRange selects the metrics window.
type TimeRange struct {
	Kind string // 7d | 30d | 12m | custom
	From string // YYYY-MM-DD, custom only
	To   string // YYYY-MM-DD, custom only
}

// DashboardUseCase assembles the dashboard payload: headline metrics for the
// selected window, a 12-month revenue chart, recent invoices and top
// customers. Revenue is measured from payment rows (money collected), not
// invoice totals.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary runs the dashboard queries. The four metric queries and the two
// widget queries are independent, so they run concurrently.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tr TimeRange) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	start, end := resolveRange(tr, now)

	type countResult struct {
		n   int64
		err error
	}
	type revenueResult struct {
		total decimal.Decimal
		err   error
	}
	type chartResult struct {
		points []repository.MonthlyRevenuePoint
		err    error
	}
	type recentResult struct {
		rows []repository.RecentInvoiceRow
		err  error
	}
	type topResult struct {
		rows []repository.TopCustomerRow
		err  error
	}

	revenueCh := make(chan revenueResult, 1)
	invoicesCh := make(chan countResult, 1)
	quotationsCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)
	chartCh := make(chan chartResult, 1)
	recentCh := make(chan recentResult, 1)
	topCh := make(chan topResult, 1)

	// Chart always covers the trailing 12 months, independent of the
	// metrics window.
	chartStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(chartMonths - 1), 0)

	go func() {
		total, err := uc.analyticsRepo.GetRevenue(ctx, start, end)
		revenueCh <- revenueResult{total, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountInvoicesByType(ctx, entity.TypeInvoice, start, end)
		invoicesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountInvoicesByType(ctx, entity.TypeQuotation, start, end)
		quotationsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountActiveCustomers(ctx)
		customersCh <- countResult{n, err}
	}()
	go func() {
		points, err := uc.analyticsRepo.GetMonthlyRevenue(ctx, chartStart, now)
		chartCh <- chartResult{points, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetRecentInvoices(ctx, dashboardRecentInvoices)
		recentCh <- recentResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopCustomers(ctx, dashboardTopCustomers)
		topCh <- topResult{rows, err}
	}()

	revenue := <-revenueCh
	invoices := <-invoicesCh
	quotations := <-quotationsCh
	customers := <-customersCh
	chart := <-chartCh
	recent := <-recentCh
	top := <-topCh

	for _, err := range []error{revenue.err, invoices.err, quotations.err, customers.err, chart.err, recent.err, top.err} {
		if err != nil {
			return nil, err
		}
	}

	out := &dto.DashboardSummaryDTO{
		Metrics: dto.DashboardMetrics{
			TotalRevenue:    revenue.total,
			TotalInvoices:   invoices.n,
			TotalQuotations: quotations.n,
			ActiveCustomers: customers.n,
		},
		ChartData:      completeMonthlySeries(chart.points, chartStart, now),
		RecentInvoices: make([]dto.RecentInvoiceDTO, 0, len(recent.rows)),
		TopCustomers:   make([]dto.TopCustomerDTO, 0, len(top.rows)),
	}
	for _, r := range recent.rows {
		out.RecentInvoices = append(out.RecentInvoices, dto.RecentInvoiceDTO{
			ID:           r.ID,
			Type:         r.Type,
			Number:       r.Number,
			Date:         r.Date.Format("2006-01-02"),
			CustomerName: r.CustomerName,
			Total:        r.Total,
			Status:       r.Status,
		})
	}
	for _, r := range top.rows {
		out.TopCustomers = append(out.TopCustomers, dto.TopCustomerDTO{
			CustomerID:   r.CustomerID,
			Name:         r.Name,
			TotalRevenue: r.TotalRevenue,
			InvoiceCount: r.InvoiceCount,
		})
	}
	return out, nil
}

// resolveRange turns a TimeRange into [start, end). Unknown kinds fall back
// to the trailing 12 months; an incomplete custom range falls back to 30
// days.
func resolveRange(tr TimeRange, now time.Time) (time.Time, time.Time) {
	switch tr.Kind {
	case "7d":
		return now.AddDate(0, 0, -7), now
	case "30d":
		return now.AddDate(0, 0, -30), now
	case "custom":
		from, errFrom := time.Parse("2006-01-02", tr.From)
		to, errTo := time.Parse("2006-01-02", tr.To)
		if errFrom != nil || errTo != nil || to.Before(from) {
			return now.AddDate(0, 0, -30), now
		}
		// Include the whole end day.
		return from, to.AddDate(0, 0, 1)
	}
	return time.Date(now.Year(), now.Month()-12, 1, 0, 0, 0, 0, now.Location()), now
}

// completeMonthlySeries fills months without payments with zero so the chart
// has one point per month.
func completeMonthlySeries(points []repository.MonthlyRevenuePoint, start, end time.Time) []dto.RevenuePoint {
	byMonth := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byMonth[p.Month.Format("2006-01")] = p.Revenue
	}

	var series []dto.RevenuePoint
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	for !cursor.After(last) {
		key := cursor.Format("2006-01")
		revenue, ok := byMonth[key]
		if !ok {
			revenue = decimal.Zero
		}
		series = append(series, dto.RevenuePoint{Date: key, Revenue: revenue})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return series
}
