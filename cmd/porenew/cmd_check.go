// Package main: the check command, a preflight probe of API access.
package main

import (
	"fmt"

	"porenew/internal/alma"

	"github.com/spf13/cobra"
)

// checkCmd probes the two endpoint families this tool needs
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the API key can reach the sets and PO lines endpoints",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	failed := 0
	for _, path := range []string{alma.PathSets, alma.PathPOLines} {
		if client.CanAccess(ctx, path) {
			fmt.Printf("✅ %s\n", path)
		} else {
			fmt.Printf("❌ %s\n", path)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of 2 endpoints unreachable", failed)
	}
	fmt.Println("API access OK.")
	return nil
}
