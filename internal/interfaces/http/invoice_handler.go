package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/application/dto"
	"github.com/coolcare/billing-api/internal/domain/entity"
)

// InvoiceHandler handles invoices and quotations.
type InvoiceHandler struct {
	ledger *billing.LedgerUseCase
	pdf    *billing.PDFUseCase
}

// NewInvoiceHandler builds the invoice handler.
func NewInvoiceHandler(ledger *billing.LedgerUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{ledger: ledger, pdf: pdf}
}

// Create godoc
// @Summary      Create an invoice or quotation
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "invoice"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.ledger.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List invoices and quotations
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  dto.InvoiceListItem
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get an invoice with its payments
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Revise an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "invoice id"
// @Param        body  body  dto.ReviseInvoiceRequest  true  "invoice"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.ReviseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.ledger.Revise(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an invoice (soft)
// @Tags         invoices
// @Param        id  path  string  true  "invoice id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.SoftDelete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Set an explicit invoice status
// @Tags         invoices
// @Accept       json
// @Param        id    path  string                  true  "invoice id"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.ledger.UpdateStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convert a quotation into an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "quotation id"
// @Success      201  {object}  dto.ConvertQuotationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/convert [post]
func (h *InvoiceHandler) Convert(c *fiber.Ctx) error {
	out, err := h.ledger.ConvertQuotation(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// NextNumber godoc
// @Summary      Suggest the next document number
// @Tags         invoices
// @Produce      json
// @Param        type  query  string  false  "invoice | quotation"
// @Success      200  {object}  dto.InvoiceNumberResponse
// @Router       /api/invoices/number [get]
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	invoiceType := c.Query("type", entity.TypeInvoice)
	if invoiceType != entity.TypeInvoice && invoiceType != entity.TypeQuotation {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type must be invoice or quotation"})
	}
	return c.JSON(dto.InvoiceNumberResponse{
		Number: billing.GenerateNumber(invoiceType, time.Now()),
		Type:   invoiceType,
	})
}

// DownloadPDF godoc
// @Summary      Download the printable invoice PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id  path  string  true  "invoice id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
