package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveStatus_Table(t *testing.T) {
	cases := []struct {
		name      string
		total     string
		totalPaid string
		current   string
		want      string
	}{
		{"no payments", "900", "0", entity.StatusSent, entity.StatusSent},
		{"partial payment", "900", "200", entity.StatusSent, entity.StatusPartial},
		{"exactly paid", "900", "900", entity.StatusPartial, entity.StatusPaid},
		{"overpaid is still paid", "900", "1000", entity.StatusPartial, entity.StatusPaid},
		{"payment deleted back to zero", "900", "0", entity.StatusPaid, entity.StatusSent},
		{"payment deleted below total", "900", "400", entity.StatusPaid, entity.StatusPartial},
		{"zero total with payment", "0", "50", entity.StatusSent, entity.StatusPaid},
		{"zero total no payment", "0", "0", entity.StatusSent, entity.StatusSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billing.DeriveStatus(d(tc.total), d(tc.totalPaid), tc.current)
			assert.Equal(t, tc.want, got)
		})
	}
}

// draft and converted are sticky: payment activity must never reclassify
// them.
func TestDeriveStatus_StickyStatuses(t *testing.T) {
	for _, sticky := range []string{entity.StatusDraft, entity.StatusConverted} {
		assert.Equal(t, sticky, billing.DeriveStatus(d("900"), d("0"), sticky))
		assert.Equal(t, sticky, billing.DeriveStatus(d("900"), d("450"), sticky))
		assert.Equal(t, sticky, billing.DeriveStatus(d("900"), d("900"), sticky))
	}
}

// cancelled and overdue are only set explicitly; the deriver treats them like
// any other non-sticky state and reclassifies on payment activity.
func TestDeriveStatus_ExplicitStatusesAreNotSticky(t *testing.T) {
	assert.Equal(t, entity.StatusPartial, billing.DeriveStatus(d("900"), d("100"), entity.StatusOverdue))
	assert.Equal(t, entity.StatusSent, billing.DeriveStatus(d("900"), d("0"), entity.StatusCancelled))
}
