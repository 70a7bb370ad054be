// Package main: read-only helper command for inspecting a PO line.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// polineCmd groups PO line inspection commands
var polineCmd = &cobra.Command{
	Use:   "poline",
	Short: "Inspect Alma PO lines",
}

// polineGetCmd dumps a single PO line
var polineGetCmd = &cobra.Command{
	Use:   "get <po-line-id>",
	Short: "Fetch and print the full PO line JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPOLineGet,
}

func runPOLineGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	body, err := client.GetPOLine(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("# number=%s status=%s renewal_date=%s renewal_period=%s\n",
		gjson.GetBytes(body, "number").String(),
		gjson.GetBytes(body, "status.value").String(),
		gjson.GetBytes(body, "renewal_date").String(),
		gjson.GetBytes(body, "renewal_period").String())

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		// Not valid JSON somehow; print it raw.
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(out.String())
	return nil
}
