package billing

import (
	"context"
	"fmt"

	"github.com/coolcare/billing-api/internal/domain"
	"github.com/coolcare/billing-api/internal/domain/repository"
)

// PDFUseCase renders the printable invoice. It reads invoice, customer and
// payment data read-only and delegates layout to the generator.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF loads the invoice with its customer and payments and
// returns the rendered PDF bytes plus a filename derived from the document
// number.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}

	payments, err := uc.paymentRepo.ListByInvoice(inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load payments: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, customer, payments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render: %w", err)
	}
	return pdfBytes, inv.Number + ".pdf", nil
}
