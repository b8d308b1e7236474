// billingctl is the operational CLI for the billing database. Its main job
// is the reconcile command, which recomputes every invoice's derived
// financial fields and reports drift without repairing anything.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coolcare/billing-api/internal/application/billing"
	"github.com/coolcare/billing-api/internal/infrastructure/postgres"
	"github.com/coolcare/billing-api/pkg/config"
	"github.com/coolcare/billing-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "billingctl",
	Short: "Operational tooling for the billing database",
	Long: `billingctl runs maintenance checks against the billing database.

Connection settings come from the same environment variables as the API
server (DATABASE_URL or DB_HOST/DB_PORT/...), optionally loaded from a
.env file in the working directory.`,
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check stored invoice totals against recomputed values",
	Long: `Recomputes subtotal, discount, total, totalPaid and balance for every
non-deleted invoice and compares them with the stored values. Drift is
reported, never repaired; fixing a drifted invoice is a deliberate manual
step after inspecting the report.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection: %w", err)
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	uc := billing.NewReconcileUseCase(invoiceRepo, paymentRepo)

	drifts, checked, err := uc.Run(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	for _, d := range drifts {
		log.Warn().
			Str("invoice_id", d.InvoiceID).
			Str("number", d.Number).
			Str("field", d.Field).
			Str("stored", d.Stored.String()).
			Str("computed", d.Computed.String()).
			Msg("drift detected")
	}

	log.Info().
		Int("invoices_checked", checked).
		Int("drifts", len(drifts)).
		Msg("reconciliation finished")

	if len(drifts) > 0 {
		return fmt.Errorf("%d drifted field(s) across %d invoice(s) checked", len(drifts), checked)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; env vars may be set directly.
		_ = err
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
