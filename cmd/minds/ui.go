// ABOUTME: CLI command for the terminal main window.
// ABOUTME: Opens settings and runs the bubbletea program until the user quits.
package main

import (
	"github.com/harperreed/minds/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Open the terminal window",
	Long: `Open the terminal window with the three measurement forms and the data page.

The window opens on the page it was closed on and brings back the slider
positions that were not saved (set restore_drafts: false to disable).

KEYS:

  1 2 3 4          mental, WEFE, CSPR, data
  tab ↑ ↓ j k      move between sliders or data tables
  ← → h l          adjust the focused slider
  ctrl+s, enter    save the form as a new row
  space            select a row on the data page
  x, delete        delete the selected rows (or the row under the cursor)
  q, ctrl+c        save window state and quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.Run(cmd.Context(), tui.Options{
			Store:         store,
			Settings:      s,
			Log:           logger,
			RestoreDrafts: cfg.RestoreDrafts,
		})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
