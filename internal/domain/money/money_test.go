package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/coolcare/billing-api/internal/domain/entity"
	"github.com/coolcare/billing-api/internal/domain/money"
)

func item(amount string) entity.InvoiceItem {
	return entity.InvoiceItem{Amount: decimal.RequireFromString(amount)}
}

func TestComputeSubtotal_EmptyIsZero(t *testing.T) {
	assert.True(t, money.ComputeSubtotal(nil).IsZero())
	assert.True(t, money.ComputeSubtotal([]entity.InvoiceItem{}).IsZero())
}

func TestComputeSubtotal_SumsAmounts(t *testing.T) {
	items := []entity.InvoiceItem{item("1000"), item("250.50"), item("0.25")}
	assert.True(t, money.ComputeSubtotal(items).Equal(decimal.RequireFromString("1250.75")))
}

func TestComputeSubtotal_TrustsCallerAmounts(t *testing.T) {
	// Amount is not recomputed from quantity x rate.
	it := entity.InvoiceItem{
		Quantity: decimal.NewFromInt(3),
		Rate:     decimal.NewFromInt(100),
		Amount:   decimal.NewFromInt(999),
	}
	assert.True(t, money.ComputeSubtotal([]entity.InvoiceItem{it}).Equal(decimal.NewFromInt(999)))
}

func TestComputeDiscountAmount_Percentage(t *testing.T) {
	got := money.ComputeDiscountAmount(decimal.NewFromInt(1000), entity.DiscountPercentage, decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(100)))
}

func TestComputeDiscountAmount_Value(t *testing.T) {
	got := money.ComputeDiscountAmount(decimal.NewFromInt(1000), entity.DiscountValue, decimal.RequireFromString("150.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("150.50")))
}

func TestComputeDiscountAmount_ZeroPercentOfZero(t *testing.T) {
	got := money.ComputeDiscountAmount(decimal.Zero, entity.DiscountPercentage, decimal.Zero)
	assert.True(t, got.IsZero())
}

// A value discount above the subtotal is not clamped and yields a negative
// total. Current behavior, kept on purpose.
func TestComputeTotal_DiscountExceedsSubtotal(t *testing.T) {
	subtotal := decimal.NewFromInt(100)
	discount := money.ComputeDiscountAmount(subtotal, entity.DiscountValue, decimal.NewFromInt(150))
	total := money.ComputeTotal(subtotal, discount)
	assert.True(t, total.Equal(decimal.NewFromInt(-50)))
}

func TestComputeTotal(t *testing.T) {
	got := money.ComputeTotal(decimal.NewFromInt(1000), decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(900)))
}
