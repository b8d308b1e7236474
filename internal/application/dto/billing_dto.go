package dto

import (
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// InvoiceItemRequest is one invoice line as submitted by the form. Amount is
// caller-supplied; the ledger trusts it when summing.
type InvoiceItemRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
	IsService   bool            `json:"is_service,omitempty"`
}

// CreateInvoiceRequest is the body for POST /api/invoices.
type CreateInvoiceRequest struct {
	Type           string               `json:"type,omitempty"` // invoice | quotation, defaults to invoice
	Number         string               `json:"number,omitempty"`
	Date           string               `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	CustomerID     string               `json:"customer_id"`
	Items          []InvoiceItemRequest `json:"items"`
	DiscountType   string               `json:"discount_type,omitempty"` // defaults to percentage
	DiscountValue  decimal.Decimal      `json:"discount_value"`
	Previous       decimal.Decimal      `json:"previous"`
	AdvancePayment decimal.Decimal      `json:"advance_payment"`
	Notes          string               `json:"notes,omitempty"`
}

// ReviseInvoiceRequest is the body for PUT /api/invoices/:id. Status, when
// present, is applied verbatim; a plain edit never re-derives status.
type ReviseInvoiceRequest struct {
	Number         string               `json:"number,omitempty"`
	Date           string               `json:"date,omitempty"`
	CustomerID     string               `json:"customer_id,omitempty"`
	Items          []InvoiceItemRequest `json:"items"`
	DiscountType   string               `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal      `json:"discount_value"`
	Previous       decimal.Decimal      `json:"previous"`
	AdvancePayment decimal.Decimal      `json:"advance_payment"`
	Status         string               `json:"status,omitempty"`
	Notes          string               `json:"notes,omitempty"`
}

// RecordPaymentRequest is the body for POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  string          `json:"payment_date"` // YYYY-MM-DD
	Method       string          `json:"payment_method,omitempty"`
	CustomMethod string          `json:"custom_method,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateStatusRequest is the body for PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PaymentResponse is a payment row in responses.
type PaymentResponse struct {
	ID           string          `json:"id"`
	InvoiceID    string          `json:"invoice_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  string          `json:"payment_date"`
	Method       string          `json:"payment_method"`
	CustomMethod string          `json:"custom_method,omitempty"`
	Source       string          `json:"source"`
	Notes        string          `json:"notes,omitempty"`
}

// InvoiceResponse is a full invoice with derived totals.
type InvoiceResponse struct {
	ID                   string               `json:"id"`
	Type                 string               `json:"type"`
	Number               string               `json:"number"`
	Date                 string               `json:"date"`
	CustomerID           string               `json:"customer_id,omitempty"`
	CustomerName         string               `json:"customer_name,omitempty"`
	CustomerCompany      string               `json:"customer_company,omitempty"`
	Items                []entity.InvoiceItem `json:"items"`
	Subtotal             decimal.Decimal      `json:"subtotal"`
	DiscountType         string               `json:"discount_type"`
	DiscountValue        decimal.Decimal      `json:"discount_value"`
	DiscountAmount       decimal.Decimal      `json:"discount_amount"`
	Total                decimal.Decimal      `json:"total"`
	Previous             decimal.Decimal      `json:"previous"`
	Paid                 decimal.Decimal      `json:"paid"`
	TotalPaid            decimal.Decimal      `json:"total_paid"`
	Balance              decimal.Decimal      `json:"balance"`
	Status               string               `json:"status"`
	ConvertedToInvoiceID string               `json:"converted_to_invoice_id,omitempty"`
	Notes                string               `json:"notes,omitempty"`
	Payments             []PaymentResponse    `json:"payments,omitempty"`
	CreatedAt            string               `json:"created_at"`
}

// InvoiceListItem is one row of GET /api/invoices.
type InvoiceListItem struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Number          string          `json:"number"`
	Date            string          `json:"date"`
	CustomerID      string          `json:"customer_id,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerCompany string          `json:"customer_company,omitempty"`
	Total           decimal.Decimal `json:"total"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Balance         decimal.Decimal `json:"balance"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

// ConvertQuotationResponse is the body returned by POST /api/invoices/:id/convert.
type ConvertQuotationResponse struct {
	InvoiceID string `json:"invoice_id"`
	Number    string `json:"number"`
}

// InvoiceNumberResponse is the body of GET /api/invoices/number.
type InvoiceNumberResponse struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}
