// ABOUTME: CLI commands for exporting and importing measurement logs.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportCategory string
	exportSince    string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export measurement logs",
	Long: `Export the measurement logs in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o     Write to file instead of stdout
  --category, -c   Only one log: mm, wefe, cspr (markdown only)
  --since          Only include rows dated on or after (YYYY-MM-DD, markdown only)

EXAMPLES:

  minds export json                        # Export everything as JSON
  minds export json -o backup.json         # Save to file
  minds export yaml                        # Export as YAML
  minds export markdown -c wefe            # WEFE as a Markdown table
  minds export markdown --since 2024-01-01 # Rows from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON(ctx)
		case "yaml":
			data, err = store.ExportYAML(ctx)
		case "markdown", "md":
			var category *models.Category
			if exportCategory != "" {
				c, err := models.ParseCategory(exportCategory)
				if err != nil {
					return err
				}
				category = &c
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation(models.DateLayout, exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = store.ExportMarkdown(ctx, category, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import measurement logs from JSON",
	Long: `Import rows from a JSON file written by 'minds export json'.

Rows are appended with new ids. Every row is checked before anything is
written; one bad row rejects the whole file.

EXAMPLES:

  minds import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		n, err := store.ImportJSON(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d row(s) from %s", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "only one log (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include rows since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
