// ABOUTME: CLI command for the page the terminal window opens on.
// ABOUTME: Shows or sets the persisted last page through the navigator.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/navigation"
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page [page|action]",
	Short: "Show or set the start page",
	Long: `Show or set the page 'minds ui' opens on.

PAGES:

  mental_mental   show-mm     145x265
  wefe            show-wefe   145x265
  cspr            show-cspr   145x265
  data            show-data   850x450

EXAMPLES:

  minds page              # Print the saved page
  minds page data         # Open on the data tables next time
  minds page show-wefe    # Same as 'minds page wefe'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			i, err := s.LastPageIndex()
			if err != nil {
				return fmt.Errorf("failed to read last page: %w", err)
			}
			p := navigation.PageFromIndex(i)
			fmt.Printf("%s %s\n", p, color.New(color.Faint).Sprint(p.Size()))
			return nil
		}

		nav := navigation.New(nil, s, logger)
		if _, ok := navigation.Actions[args[0]]; ok {
			err = nav.Trigger(args[0])
		} else {
			var p navigation.Page
			p, err = navigation.ParsePage(args[0])
			if err == nil {
				err = nav.Switch(p)
			}
		}
		if err != nil {
			return err
		}

		color.Green("✓ Start page set to %s", nav.Current())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
