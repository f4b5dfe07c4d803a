// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/minds/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets an assistant read and write your measurement logs through a
standardized protocol. The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "minds": {
        "command": "minds",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  commit_entry      Save one row (category, sliders, optional date/time)
  list_entries      List recent rows of a log
  delete_entries    Delete rows of a log by id
  get_summary       Row counts and the latest row of every log

AVAILABLE RESOURCES:

  minds://recent    Last 10 rows of each log
  minds://today     Rows dated today`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, version, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
