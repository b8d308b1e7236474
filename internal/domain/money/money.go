// Package money holds the pure arithmetic behind invoice totals. All values
// are shopspring decimals so persisted figures never drift from binary
// floating-point rounding.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeSubtotal sums the line amounts. Amounts are caller-supplied and
// trusted; an empty item list yields zero.
func ComputeSubtotal(items []entity.InvoiceItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}

// ComputeDiscountAmount resolves the discount against the subtotal.
// A percentage discount is subtotal * value / 100; a value discount is taken
// as-is. A value discount larger than the subtotal is NOT clamped, so the
// resulting total can go negative. Callers that care must clamp upstream.
func ComputeDiscountAmount(subtotal decimal.Decimal, discountType string, discountValue decimal.Decimal) decimal.Decimal {
	if discountType == entity.DiscountPercentage {
		return subtotal.Mul(discountValue).Div(oneHundred)
	}
	return discountValue
}

// ComputeTotal is subtotal minus the discount amount.
func ComputeTotal(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount)
}
