// ABOUTME: CLI command for copying rows from another minds database.
// ABOUTME: Merges an older or second database file into the current one.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/models"
	"github.com/harperreed/minds/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --from <file>",
	Short: "Copy rows from another database",
	Long: `Copy every row of the three logs from another minds database file
into the current one.

Use this to merge the database an older install kept next to the program
(minds.db in its working directory) into ~/.local/share/minds/minds.db.

IMPORTANT:

  - The source file is opened read-only and never changed
  - Rows get new ids in the current database
  - Running twice copies the rows twice
  - Run with --dry-run first to see what would be copied

USAGE:

  minds migrate --from ./minds.db --dry-run   # Preview
  minds migrate --from ./minds.db             # Copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		srcInfo, err := os.Stat(migrateFrom)
		if err != nil {
			return fmt.Errorf("source database: %w", err)
		}
		if dstInfo, err := os.Stat(store.Path()); err == nil && os.SameFile(srcInfo, dstInfo) {
			return fmt.Errorf("source and destination are the same file: %s", migrateFrom)
		}

		src, err := storage.OpenReadOnly(migrateFrom, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			for _, c := range models.AllCategories {
				n, err := src.Count(ctx, c)
				if err != nil {
					return err
				}
				fmt.Printf("  %s %d\n", padRight(models.MustSpec(c).Table, 22), n)
			}
			return nil
		}

		summary, err := storage.MigrateData(ctx, src, store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %d row(s) from %s", summary.Total(), migrateFrom)
		fmt.Printf("  %s %d\n", padRight("mental_mental_table", 22), summary.MentalMental)
		fmt.Printf("  %s %d\n", padRight("wefe_table", 22), summary.WEFE)
		fmt.Printf("  %s %d\n", padRight("cspr_table", 22), summary.CSPR)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source database file")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(migrateCmd)
}
