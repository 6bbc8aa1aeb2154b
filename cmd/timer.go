package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Start()
		saveTimer()
		return printTimer("Timer started")
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Pause()
		saveTimer()
		return printTimer("Timer paused")
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Start()
		saveTimer()
		return printTimer("Timer resumed")
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next interval",
	Long: `Skip ends the current interval immediately and moves to the next one.
The elapsed portion is still credited to the active task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Skip()
		saveTimer()
		return printTimer("Skipped to next interval")
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the timer to a fresh focus countdown",
	Long: `Reset aborts whatever is in progress and returns to a full, paused
focus countdown. The in-progress interval is discarded without being
logged, and the focus counter starts over.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Reset()
		saveTimer()
		return printTimer("Timer reset")
	},
}

// printTimer prints a short confirmation plus the current countdown, or the
// full JSON snapshot with --json.
func printTimer(msg string) error {
	snap := app.engine.Snapshot()
	if jsonOutput {
		return printJSON(timerStatusPayload(snap))
	}

	state := "paused"
	if snap.Running {
		state = "running"
	}
	fmt.Printf("%s\n%s %s (%s)\n", msg, snap.Mode.Label(), formatClock(snap.TimeLeft), state)
	return nil
}
