// Package main: the renew command, porenew's core operation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"porenew/internal/alma"
	"porenew/internal/renewal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	setName          string
	setID            string
	newRenewalDate   string
	newRenewalPeriod int
)

// renewCmd performs the bulk renewal update
var renewCmd = &cobra.Command{
	Use:   "renew [po-line-id...]",
	Short: "Bulk-update the renewal date and reminder period on PO lines",
	Long: `Updates the renewal date (and optionally the renewal reminder period)
on every targeted PO line. Targets are the union of the positional PO line
IDs and the members of the set named by --set-name or --set-id.

Examples:
  porenew renew --set-name "2026 Serials" --new-renewal-date 2027-01-01
  porenew renew --set-id 123456 --new-renewal-date 2027-01-01 --new-renewal-period 60
  porenew renew --new-renewal-date 2027-01-01 22998765430001021 22998765440001021

Note: Alma has a known timezone-related off-by-one on renewal and other
date fields. The date is submitted exactly as given, without compensation.`,
	RunE: runRenew,
}

func init() {
	renewCmd.Flags().StringVar(&setName, "set-name", "", "Name of the Alma set whose members to update")
	renewCmd.Flags().StringVar(&setID, "set-id", "", "ID of the Alma set whose members to update")
	renewCmd.Flags().StringVar(&newRenewalDate, "new-renewal-date", "", "New renewal date, YYYY-MM-DD (required)")
	renewCmd.Flags().IntVar(&newRenewalPeriod, "new-renewal-period", 0, "New renewal reminder period (non-negative)")
	_ = renewCmd.MarkFlagRequired("new-renewal-date")
}

func runRenew(cmd *cobra.Command, args []string) error {
	change := renewal.Change{
		RenewalDate:   newRenewalDate,
		RenewalPeriod: newRenewalPeriod,
		HasPeriod:     cmd.Flags().Changed("new-renewal-period"),
	}
	if err := change.Validate(); err != nil {
		return err
	}

	target := renewal.Target{
		SetID:     setID,
		SetName:   setName,
		POLineIDs: args,
	}
	// Checked before the client is built so an empty invocation fails
	// without touching the network.
	if target.Empty() {
		return renewal.ErrNoTargets
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if err := preflight(ctx, client); err != nil {
		return err
	}

	ids, err := renewal.NewResolver(client, logger).Resolve(ctx, target)
	if err != nil {
		return err
	}

	fmt.Printf("Updating %d PO lines: renewal_date=%s", len(ids), newRenewalDate)
	if change.HasPeriod {
		fmt.Printf(" renewal_period=%d", newRenewalPeriod)
	}
	fmt.Println()

	updater := renewal.NewUpdater(client, logger)
	updater.Progress = func(done, total int) {
		fmt.Printf("\r%d/%d", done, total)
	}

	start := time.Now()
	report, err := updater.Run(ctx, ids, change)
	if err != nil {
		return err
	}
	fmt.Println()

	for _, f := range report.Failures() {
		fmt.Printf("❌ PO line %s: %v\n", f.POLineID, f.Err)
	}
	fmt.Println(report.Summary())
	logger.Info("bulk update finished",
		zap.Int("total", len(report.Results)),
		zap.Int("failed", report.Failed()),
		zap.Duration("elapsed", time.Since(start)))

	// Per-record failures are reported above but deliberately leave the
	// exit code at zero.
	return ctx.Err()
}

// preflight verifies the API key can reach both endpoint families before
// any record is touched.
func preflight(ctx context.Context, client *alma.Client) error {
	for _, path := range []string{alma.PathSets, alma.PathPOLines} {
		if !client.CanAccess(ctx, path) {
			return fmt.Errorf("unable to access Alma API at %s (check --api-key and --api-domain)", path)
		}
	}
	return nil
}
