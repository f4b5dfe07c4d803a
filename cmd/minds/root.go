// ABOUTME: Root Cobra command for minds CLI.
// ABOUTME: Loads config, builds the logger, and manages the database via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/minds/internal/config"
	"github.com/harperreed/minds/internal/logging"
	"github.com/harperreed/minds/internal/settings"
	"github.com/harperreed/minds/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	dbPath  string
	verbose bool

	cfg    *config.Config
	store  *storage.DB
	logger *zap.SugaredLogger
)

// commands that never touch the database
var noStore = map[string]bool{
	"version":  true,
	"help":     true,
	"config":   true,
	"init":     true,
	"page":     true,
	"settings": true,
}

// commands that own the terminal or stdout
var quiet = map[string]bool{
	"ui":  true,
	"mcp": true,
}

var rootCmd = &cobra.Command{
	Use:   "minds",
	Short: "Personal mental-health self-tracker",
	Long: `Minds records how you are doing on 0-10 sliders, stamped with a date and time.

WHAT IT TRACKS:

  Mental     mood, mania, depression, mixed_risk
  WEFE       wellbeing, excite, focus, energy (plus their sum)
  CSPR       calm, stress, pain, rage

Each category is its own log. Rows are never edited, only added or deleted.

QUICK START:

  $ minds ui                                   # Open the terminal window
  $ minds commit wefe --excite 3 --energy 5    # Log WEFE (sum 8)
  $ minds commit mm --mood 6 --depression 2    # Log mental-mental
  $ minds list cspr -n 5                       # Last 5 CSPR rows
  $ minds delete cspr 3 4                      # Delete rows 3 and 4

TERMINAL WINDOW:

  1-4        switch page (mental, WEFE, CSPR, data)
  tab ↑ ↓    move between sliders
  ← →        adjust the focused slider
  ctrl+s     save the form as a new row
  space / x  select / delete rows on the data page
  q          save window state and quit

MCP INTEGRATION:

  Run 'minds mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "minds": { "command": "minds", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Rows are stored in SQLite at ~/.local/share/minds/minds.db.
  Window settings live next to it in ~/.local/share/minds/settings.
  Override with --db, MINDS_DATA_DIR, or ~/.config/minds/config.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		opts := logging.FromConfig(cfg)
		if verbose && !quiet[cmd.Name()] {
			opts.Console = os.Stderr
			opts.Level = "debug"
		}
		logger, err = logging.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if noStore[cmd.Name()] {
			return nil
		}

		path := dbPath
		if path == "" {
			path = cfg.DBPath()
		}
		store, err = storage.Open(path,
			storage.WithSeed(cfg.GetSeedPath()),
			storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debugw("command started", "command", cmd.CommandPath(), "db", store.Path())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/minds/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default <data_dir>/minds.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
}

// Execute runs the root command. PersistentPostRunE is skipped when a
// command fails, so the store is closed here as well.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

func closeStore() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// openSettings opens the settings store. Badger locks its directory, so
// callers close it before returning.
func openSettings() (*settings.Store, error) {
	s, err := settings.Open(cfg.SettingsDir(), cfg.Organization, cfg.Application, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	return s, nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
