// Package pdf renders the printable invoice with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + GST  │  Number + Date               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer name + contact                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Description | Qty | Rate | Amount                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Discount / Total / Previous / Balance   │
//	│  PAYMENT HISTORY                                            │
//	│  FOOTER: payment instructions + QR to the customer page     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/pkg/config"
	"github.com/coolcare/billing-api/pkg/currency"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct {
	company config.CompanyConfig
	payment config.PaymentInfoConfig
	// baseURL is the public origin the QR code points at: baseURL/info/{customerID}
	baseURL string
}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator(company config.CompanyConfig, payment config.PaymentInfoConfig, baseURL string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, payment: payment, baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateInvoicePDF renders the document and returns its bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	payments []*entity.Payment,
) ([]byte, error) {
	cfg := marotocfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(invoice)+" "+invoice.Number, true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.billToRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(invoice) {
		m.AddRows(r)
	}

	if len(payments) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range paymentHistoryRows(payments) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.footerRows(customer) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func documentTitle(invoice *entity.Invoice) string {
	if invoice.Type == entity.TypeQuotation {
		return "QUOTATION"
	}
	return "INVOICE"
}

// headerRow: company name + GST (left), document title + number + date (right).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	date := invoice.Date.Format("02/01/2006")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(g.company.Address, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("GST: "+g.company.GSTNumber+"   |   "+strings.Join(g.company.Phones, " / "), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(invoice), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 8,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

// billToRow: customer block.
func (g *MarotoPDFGenerator) billToRow(customer *entity.Customer) core.Row {
	name, contact := "—", "—"
	if customer != nil {
		name = customer.Name
		if customer.CompanyName != "" {
			name += " (" + customer.CompanyName + ")"
		}
		contact = fmt.Sprintf("Phone: %s   |   %s",
			nonEmpty(customer.Phone, "—"),
			nonEmpty(customer.Address, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: header of the line-item table.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableItemRows: one row per line item. Service lines show no quantity.
func tableItemRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := it.Quantity.String()
		if it.IsService {
			qty = "—"
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				qty,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				currency.Plain(it.Rate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				currency.Plain(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: right-aligned totals block.
func totalsRows(invoice *entity.Invoice) []core.Row {
	plain := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		)
	}
	grand := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		)
	}

	rows := []core.Row{
		plain("Subtotal:", currency.Exact(invoice.Subtotal)),
	}
	if !invoice.DiscountAmount.IsZero() {
		rows = append(rows, plain("Discount:", "-"+currency.Exact(invoice.DiscountAmount)))
	}
	rows = append(rows, plain("Total:", currency.Exact(invoice.Total)))
	if !invoice.Previous.IsZero() {
		rows = append(rows, plain("Previous Balance:", currency.Exact(invoice.Previous)))
	}
	rows = append(rows,
		plain("Total Paid:", currency.Exact(invoice.TotalPaid)),
		grand("BALANCE DUE:", currency.Exact(invoice.Balance)),
	)
	return rows
}

// paymentHistoryRows: one row per ledgered payment.
func paymentHistoryRows(payments []*entity.Payment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAYMENT HISTORY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range payments {
		method := p.Method
		if p.Method == entity.MethodCustom && p.CustomMethod != "" {
			method = p.CustomMethod
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(
				p.PaymentDate.Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				method,
				props.Text{Size: 8, Top: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				currency.Exact(p.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				p.Notes,
				props.Text{Size: 7, Top: 1, Left: 2, Color: colorGray},
			)),
		))
	}
	return rows
}

// footerRows: payment instructions + QR code pointing at the customer's
// public info page.
func (g *MarotoPDFGenerator) footerRows(customer *entity.Customer) []core.Row {
	bank := fmt.Sprintf("%s   |   %s   |   IBAN %s   |   SWIFT %s",
		g.payment.BankName, g.payment.BankAccountName, g.payment.BankIBAN, g.payment.BankSwiftCode)
	wallets := fmt.Sprintf("JazzCash: %s (%s)   |   EasyPaisa: %s (%s)",
		g.payment.JazzCashNumber, g.payment.JazzCashTitle,
		g.payment.EasyPaisaNumber, g.payment.EasyPaisaTitle)

	info := col.New(8).Add(
		text.New("PAYMENT INFORMATION", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(bank, props.Text{Size: 7.5, Top: 6, Color: colorGray}),
		text.New(wallets, props.Text{Size: 7.5, Top: 11, Color: colorGray}),
		text.New(g.company.Email+"   |   "+g.company.Website, props.Text{
			Size: 7.5, Top: 16, Color: colorGray,
		}),
	)

	if g.baseURL != "" && customer != nil {
		qrData := fmt.Sprintf("%s/info/%s", g.baseURL, customer.ID)
		return []core.Row{row.New(32).Add(
			info,
			col.New(4).Add(code.NewQr(qrData, props.Rect{
				Percent: 90,
				Center:  true,
			})),
		)}
	}
	return []core.Row{row.New(24).Add(info, col.New(4))}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
