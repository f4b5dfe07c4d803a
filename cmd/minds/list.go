// ABOUTME: CLI command for listing measurement rows.
// ABOUTME: Prints one category, or all of them, newest rows last.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list [category]",
	Aliases: []string{"ls", "l"},
	Short:   "List measurement rows",
	Long: `List recent rows from the measurement logs.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TIME  SLIDERS  (SUM)

  The ID is what 'minds delete' takes.

CATEGORIES:

  mm (mental_mental), wefe, cspr. Without a category every log is listed.

EXAMPLES:

  minds list                 # Last 20 rows of every log
  minds list wefe            # Only WEFE rows
  minds list cspr -n 50      # Last 50 CSPR rows
  minds list mm -n 0         # Every mental-mental row`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := models.AllCategories
		if len(args) == 1 {
			c, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			categories = []models.Category{c}
		}

		faint := color.New(color.Faint)
		for i, c := range categories {
			spec := models.MustSpec(c)
			entries, err := store.List(cmd.Context(), c, listLimit)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", spec.Table, err)
			}

			if len(categories) > 1 {
				if i > 0 {
					fmt.Println()
				}
				color.New(color.Bold).Printf("%s (%d)\n", spec.Title, len(entries))
			}
			if len(entries) == 0 {
				fmt.Println("No entries found.")
				continue
			}
			for _, e := range entries {
				fmt.Printf("%s %s %s %s\n",
					faint.Sprint(padRight(fmt.Sprintf("%d", e.ID), 6)),
					faint.Sprint(e.Date),
					faint.Sprint(e.Time),
					formatValues(spec, e))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max rows per log (0 for all)")
	rootCmd.AddCommand(listCmd)
}
