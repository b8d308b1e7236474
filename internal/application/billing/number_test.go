package billing_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/domain/entity"
)

func TestGenerateNumber_Format(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	inv := billing.GenerateNumber(entity.TypeInvoice, now)
	assert.Regexp(t, regexp.MustCompile(`^INV-202609-\d{3}$`), inv)

	qt := billing.GenerateNumber(entity.TypeQuotation, now)
	assert.Regexp(t, regexp.MustCompile(`^QT-202609-\d{3}$`), qt)
}

func TestGenerateNumber_PadsMonthAndSuffix(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		n := billing.GenerateNumber(entity.TypeInvoice, now)
		assert.Regexp(t, regexp.MustCompile(`^INV-202601-\d{3}$`), n)
	}
}
