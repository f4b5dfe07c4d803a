// ABOUTME: CLI commands for the configuration file.
// ABOUTME: Prints the effective configuration and writes a default file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after the file, MINDS_* environment variables,
and defaults are applied.

ENVIRONMENT:

  MINDS_DATA_DIR          data directory (database, settings, log)
  MINDS_DB_NAME           database file name
  MINDS_SEED_PATH         template database copied on first run
  MINDS_RESTORE_DRAFTS    bring back unsaved sliders in 'minds ui'
  MINDS_LOG_LEVEL         debug, info, warn, error

EXAMPLES:

  minds config            # Print the configuration and resolved paths
  minds config init       # Write ~/.config/minds/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, string(data))
		fmt.Fprintln(out)

		faint := color.New(color.Faint)
		path := cfgFile
		if path == "" {
			path = config.GetConfigPath()
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("config", 10)), path)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("database", 10)), cfg.DBPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("settings", 10)), cfg.SettingsDir())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("log", 10)), cfg.LogPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.GetConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		color.Green("✓ Wrote %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
