package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/application/dto"
)

// PaymentHandler handles the payment ledger endpoints.
type PaymentHandler struct {
	ledger *billing.LedgerUseCase
}

// NewPaymentHandler builds the payment handler.
func NewPaymentHandler(ledger *billing.LedgerUseCase) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// Record godoc
// @Summary      Record a payment against an invoice
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "invoice id"
// @Param        body  body  dto.RecordPaymentRequest  true  "payment"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse  "includes max_amount on overpayment"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.ledger.RecordPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Delete a payment and reverse its effect
// @Tags         payments
// @Param        id  path  string  true  "payment id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.DeletePayment(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
