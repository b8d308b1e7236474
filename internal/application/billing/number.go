package billing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coolcare/billing-api/internal/domain/entity"
)

// GenerateNumber builds a document number: INV-YYYYMM-NNN for invoices,
// QT-YYYYMM-NNN for quotations, with a 3-digit random suffix. Uniqueness is
// best effort; there is no collision retry.
func GenerateNumber(invoiceType string, now time.Time) string {
	prefix := "INV"
	if invoiceType == entity.TypeQuotation {
		prefix = "QT"
	}
	return fmt.Sprintf("%s-%04d%02d-%03d", prefix, now.Year(), int(now.Month()), rand.Intn(1000))
}
