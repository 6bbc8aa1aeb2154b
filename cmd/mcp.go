package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server exposes the countdown and the day ledger as tools
and communicates via stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "Starting MCP server on stdio. Press Ctrl+C to stop.")

		// A countdown restored as running keeps ticking while serving.
		if app.engine.Snapshot().Running {
			app.engine.Start()
		}

		server := mcp.NewServer(app.engine, app.sched, saveTimer)
		if err := server.Start(context.Background()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
