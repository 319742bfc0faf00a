package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireSpreadsheet validates that exactly one spreadsheet argument is
// provided. Returns a helpful error message with usage and examples if
// missing or too many.
func RequireSpreadsheet(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <spreadsheet>

Usage: %s <spreadsheet>

Example:
  %s data_dictionary.xlsx`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireRecordFile validates that exactly one record-file argument is
// provided.
func RequireRecordFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <records.json>

Usage: %s <records.json>

Example:
  %s data_dictionary_mces.json --endpoint http://localhost:8080`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
