package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coolcare/billing-api/internal/application/analytics"
)

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the dashboard handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard metrics, revenue chart and widgets
// @Tags         dashboard
// @Produce      json
// @Param        range  query  string  false  "7d | 30d | 12m | custom"
// @Param        from   query  string  false  "YYYY-MM-DD, custom only"
// @Param        to     query  string  false  "YYYY-MM-DD, custom only"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	tr := analytics.TimeRange{
		Kind: c.Query("range"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	out, err := h.uc.GetSummary(c.UserContext(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
