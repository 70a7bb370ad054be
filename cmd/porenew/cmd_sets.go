// Package main: read-only helper commands for inspecting Alma sets.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// setsCmd groups set inspection commands
var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Inspect Alma sets",
	Long: `List Alma sets and their member record IDs.

Subcommands:
  list     - List sets visible to the API key
  members  - List the member PO line IDs of a set`,
	RunE: runSetsList,
}

// setsListCmd lists sets
var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sets visible to the API key",
	RunE:  runSetsList,
}

// setsMembersCmd lists the members of one set
var setsMembersCmd = &cobra.Command{
	Use:   "members <set-id>",
	Short: "List the member record IDs of a set",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetsMembers,
}

func runSetsList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	printed := 0
	total := 0
	for offset := 0; ; offset += 50 {
		sets, t, err := client.ListSets(ctx, 50, offset)
		if err != nil {
			return fmt.Errorf("failed to list sets: %w", err)
		}
		total = t
		if len(sets) == 0 {
			break
		}
		if printed == 0 {
			fmt.Println(strings.Repeat("─", 60))
		}
		for _, s := range sets {
			visibility := "public"
			if !s.Public() {
				visibility = "private"
			}
			fmt.Printf("  %-16s %-10s %-8s %s\n", s.ID, s.Type.Value, visibility, s.Name)
			printed++
		}
		if printed >= total {
			break
		}
	}

	if printed == 0 {
		fmt.Println("No sets found.")
		return nil
	}
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("Total: %d sets\n", total)
	return nil
}

func runSetsMembers(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	set, err := client.GetSet(ctx, args[0])
	if err != nil {
		return err
	}
	if !set.Itemized() {
		fmt.Printf("⚠️  Set %s is %s, not itemized; membership may change between calls.\n", set.ID, set.Type.Value)
	}

	members, err := client.SetMembers(ctx, set.ID)
	if err != nil {
		return err
	}
	for _, id := range members {
		fmt.Println(id)
	}
	fmt.Printf("Total: %d members of set %q\n", len(members), set.Name)
	return nil
}
