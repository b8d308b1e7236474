package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coolcare/billing-api/internal/application/analytics"
	"github.com/coolcare/billing-api/internal/application/auth"
	"github.com/coolcare/billing-api/internal/application/billing"
)

// RouterDeps are the router dependencies.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *billing.CustomerUseCase
	LedgerUC    *billing.LedgerUseCase
	PDFUC       *billing.PDFUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices and quotations
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.LedgerUC, deps.PDFUC)
	paymentHandler := NewPaymentHandler(deps.LedgerUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	// registered before /:id so "number" is not matched as an id
	invoices.Get("/number", invoiceHandler.NextNumber)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Post("/:id/convert", invoiceHandler.Convert)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/payments", paymentHandler.Record)

	// Payments
	payments := protected.Group("/payments")
	payments.Delete("/:id", paymentHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
