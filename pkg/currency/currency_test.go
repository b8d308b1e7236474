package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/coolcare/billing-api/pkg/currency"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStandard(t *testing.T) {
	assert.Equal(t, "Rs. 1,234.56", currency.Standard(d("1234.56")))
	assert.Equal(t, "Rs. 1,000", currency.Standard(d("1000")))
	assert.Equal(t, "Rs. 0", currency.Standard(decimal.Zero))
	assert.Equal(t, "Rs. -1,234", currency.Standard(d("-1234")))
}

func TestExactAndWhole(t *testing.T) {
	assert.Equal(t, "Rs. 1,234.00", currency.Exact(d("1234")))
	assert.Equal(t, "Rs. 1,234.50", currency.Exact(d("1234.5")))
	assert.Equal(t, "Rs. 1,235", currency.Whole(d("1234.56")))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "1,234.56", currency.Plain(d("1234.56")))
}

func TestShort(t *testing.T) {
	cases := map[string]string{
		"999":        "Rs. 999",
		"1000":       "Rs. 1.0K",
		"1500":       "Rs. 1.5K",
		"999999":     "Rs. 1000.0K",
		"1000000":    "Rs. 1.0M",
		"2500000":    "Rs. 2.5M",
		"1000000000": "Rs. 1.0B",
		"-1200":      "-Rs. 1.2K",
	}
	for in, want := range cases {
		assert.Equal(t, want, currency.Short(d(in)), "amount %s", in)
	}
}
