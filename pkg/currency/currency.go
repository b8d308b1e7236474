package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Pakistani-rupee presentation helpers for printed invoices and the
// dashboard. Amounts are stored as decimals; formatting is display-only.

var printer = message.NewPrinter(language.English)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Standard formats with the Rs. symbol and up to two decimals, trailing
// zeros trimmed: "Rs. 1,234.56", "Rs. 1,000".
func Standard(amount decimal.Decimal) string {
	return "Rs. " + format(amount, 0, 2)
}

// Plain formats like Standard but without the symbol.
func Plain(amount decimal.Decimal) string {
	return format(amount, 0, 2)
}

// Exact always shows two decimals: "Rs. 1,234.00".
func Exact(amount decimal.Decimal) string {
	return "Rs. " + format(amount, 2, 2)
}

// Whole rounds to whole rupees: "Rs. 1,235".
func Whole(amount decimal.Decimal) string {
	return "Rs. " + format(amount, 0, 0)
}

// Short compacts large amounts to K/M/B with one decimal: "Rs. 1.5M".
// The sign goes before the symbol: "-Rs. 1.2K".
func Short(amount decimal.Decimal) string {
	abs := amount.Abs()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + "Rs. " + abs.Div(billion).StringFixed(1) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + "Rs. " + abs.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "Rs. " + abs.Div(thousand).StringFixed(1) + "K"
	}
	return Standard(amount)
}

func format(amount decimal.Decimal, minFrac, maxFrac int) string {
	f, _ := amount.Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	))
}
