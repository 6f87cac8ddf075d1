// ABOUTME: CLI commands for exporting and importing fitrank data.
// ABOUTME: JSON is a full backup; YAML is a readable per-profile summary.
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/fitrank/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitrank data",
	Long: `Export fitrank data.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   Per-profile summary with stats, achievements and workouts

EXAMPLES:

  fitrank export json                  # Export all data as JSON
  fitrank export json -o backup.json   # Save to file
  fitrank export yaml                  # Readable summary`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var data []byte
		var err error
		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(ctx, repo)
		case "yaml":
			data, err = storage.ExportYAML(ctx, repo)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			green.Fprintf(out, "✓ Exported to %s\n", exportOutput)
			return nil
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitrank data from JSON",
	Long: `Import data from a JSON backup made with 'fitrank export json'.

Records with the same ID are overwritten.

EXAMPLES:

  fitrank import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(cmd.Context(), repo, raw); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
