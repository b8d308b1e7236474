package billing

import (
	"github.com/shopspring/decimal"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// DeriveStatus maps payment totals to the next invoice status. It runs after
// every recorded or deleted payment, never on a plain edit.
//
// draft and converted are sticky: payment activity must not reclassify them.
// cancelled and overdue are only ever set explicitly, so they are not
// produced here either.
func DeriveStatus(total, totalPaid decimal.Decimal, currentStatus string) string {
	if currentStatus == entity.StatusDraft || currentStatus == entity.StatusConverted {
		return currentStatus
	}
	switch {
	case totalPaid.IsZero():
		return entity.StatusSent
	case totalPaid.GreaterThanOrEqual(total):
		return entity.StatusPaid
	case totalPaid.IsPositive():
		return entity.StatusPartial
	}
	return currentStatus
}
