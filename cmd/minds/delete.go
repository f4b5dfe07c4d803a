// ABOUTME: CLI command for deleting measurement rows.
// ABOUTME: Removes rows by id from one category in a single transaction.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/models"
	"github.com/harperreed/minds/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <category> <id>...",
	Aliases: []string{"del", "rm"},
	Short:   "Delete measurement rows",
	Long: `Delete one or more rows from a measurement log by id.

The ids are shown in the first column of 'minds list' output.

EXAMPLES:

  minds delete wefe 12            # Delete one WEFE row
  minds rm cspr 3 4 9             # Delete three CSPR rows

CAUTION:

  This permanently deletes the rows. There is no undo.
  If any id does not exist nothing is deleted.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := models.ParseCategory(args[0])
		if err != nil {
			return err
		}
		spec := models.MustSpec(c)

		ids := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id: %s", arg)
			}
			ids = append(ids, id)
		}

		n, err := store.Delete(cmd.Context(), c, ids...)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", spec.Table, err)
		}
		if err != nil {
			return fmt.Errorf("failed to delete rows: %w", err)
		}

		color.Yellow("✗ Deleted %d row(s) from %s", n, spec.Table)
		for _, id := range ids {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("#%d", id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
