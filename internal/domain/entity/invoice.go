package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document types. A quotation shares the invoices table and turns into a real
// invoice through conversion.
const (
	TypeInvoice   = "invoice"
	TypeQuotation = "quotation"
)

// Invoice statuses.
const (
	StatusDraft     = "draft"     // just created, not sent to the customer yet
	StatusSent      = "sent"      // delivered, no payment received
	StatusPartial   = "partial"   // 0 < totalPaid < total
	StatusPaid      = "paid"      // totalPaid >= total
	StatusOverdue   = "overdue"   // set explicitly, never derived
	StatusCancelled = "cancelled" // set explicitly, never derived
	StatusConverted = "converted" // quotation frozen after conversion
)

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountValue      = "value"
)

// InvoiceItem is one line of an invoice, persisted as a JSONB array on the
// invoice row. Amount is supplied by the caller and trusted when summing;
// it is not recomputed from Quantity x Rate here.
type InvoiceItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
	IsService   bool            `json:"isService,omitempty"` // labor/service lines without a meaningful quantity
}

// Invoice is the header of an invoice or quotation with its derived financial
// fields stored redundantly for fast reads. Every mutation goes through the
// ledger so the invariant balance = total + previous - totalPaid holds.
type Invoice struct {
	ID         string
	Type       string // invoice | quotation
	Number     string
	Date       time.Time
	CustomerID string

	Items []InvoiceItem

	Subtotal       decimal.Decimal // sum of item amounts
	DiscountType   string          // percentage | value
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal // subtotal - discountAmount

	Previous  decimal.Decimal // carried-forward prior balance
	Paid      decimal.Decimal // advance payment declared at create/edit time
	TotalPaid decimal.Decimal // sum of all ledgered payment rows
	Balance   decimal.Decimal // total + previous - totalPaid

	Status               string
	ConvertedToInvoiceID string // set on a quotation once converted

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	DeletedAt *time.Time
}
