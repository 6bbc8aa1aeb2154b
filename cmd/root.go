// Package cmd provides the CLI commands for pomoday.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath     string
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pomoday",
	Short: "Pomoday - a pomodoro timer with a day-keyed task ledger",
	Long: `Pomoday is a command-line pomodoro timer. Focus and break intervals feed
a per-day task ledger; each task also carries its own stopwatch for
tracking time outside the pomodoro cycle.

Run "pomoday" with no arguments for the fullscreen timer board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runBoard,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.pomoday/pomoday.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Pomoday\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runBoard launches the fullscreen timer board.
func runBoard(cmd *cobra.Command, args []string) error {
	// A countdown restored as running keeps ticking while the board is open.
	if app.engine.Snapshot().Running {
		app.engine.Start()
	}

	theme := tui.NewTheme(&app.config.Theme)
	if err := tui.Run(app.engine, app.sched, theme, saveTimer, toggleNotifications); err != nil {
		return fmt.Errorf("timer board error: %w", err)
	}
	return nil
}
