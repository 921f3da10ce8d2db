package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-tools/lifelog/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Lifelog MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the timeline,
reminder, and date-resolution tools via STDIO.

The --dbpath flag is optional. If not provided, a system-specific default
location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\lifelog\lifelog.db
- macOS: ~/Library/Application Support/lifelog/lifelog.db
- Linux: ~/.local/share/lifelog/lifelog.db

Example:

  lifelog mcp --dbpath lifelog.db | tee server.log

  # Or simply use the default location:
  lifelog mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewLifelogMCPServer(dbPath)
		if err != nil {
			return err
		}
		defer srv.Close()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Lifelog MCP server started. DB: %s\n", srv.DbPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, get_todays_date, calculate_future_date, parse_relative_date, log_event, set_reminder, get_upcoming_reminders, query_events_by_date, query_events, query_events_by_category, search_events, get_recent_events, get_event, get_all_categories, get_timeline_statistics")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
