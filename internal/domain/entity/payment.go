package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	MethodCash   = "cash"
	MethodOnline = "online"
	MethodCustom = "custom"
)

// Payment sources. Advance and conversion rows are written by the ledger
// itself when an advance payment is declared; manual rows come from the
// payment form. The source column replaces matching on the notes string.
const (
	SourceManual     = "manual"
	SourceAdvance    = "advance"
	SourceConversion = "conversion"
)

// Notes written on ledger-generated payment rows, kept for display.
const (
	NotesAdvanceOnCreate     = "Advance payment received at invoice creation"
	NotesAdvanceOnConversion = "Advance payment from quotation conversion"
)

// Payment is one ledgered payment against an invoice. Deleting a payment must
// reverse its effect on the invoice totals exactly.
type Payment struct {
	ID           string
	InvoiceID    string
	Amount       decimal.Decimal // always > 0
	PaymentDate  time.Time
	Method       string // cash | online | custom
	CustomMethod string // free text when Method is custom
	Source       string // manual | advance | conversion
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}
