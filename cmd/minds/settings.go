// ABOUTME: CLI command for inspecting the persisted window settings.
// ABOUTME: Prints every stored key or removes them all with --reset.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var settingsReset bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show saved window settings",
	Long: `Show the settings the terminal window saves on exit.

KEYS:

  geometry          last window size
  windowState       focused slider per page and the active data table
  lastPageIndex     page shown on start (see 'minds page')
  sliders/<log>     unsaved slider positions per category

EXAMPLES:

  minds settings            # Print every key
  minds settings --reset    # Forget all of them`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		defer s.Close()

		keys, err := s.Keys()
		if err != nil {
			return err
		}

		if settingsReset {
			for _, k := range keys {
				if err := s.Remove(k); err != nil {
					return err
				}
			}
			color.Yellow("✗ Removed %d setting(s)", len(keys))
			return nil
		}

		if len(keys) == 0 {
			fmt.Println("No settings saved.")
			return nil
		}
		for _, k := range keys {
			var raw json.RawMessage
			if _, err := s.Value(k, &raw); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", padRight(k, 22), truncate(string(raw), 80))
		}
		return nil
	},
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsReset, "reset", false, "remove every saved setting")
	rootCmd.AddCommand(settingsCmd)
}
