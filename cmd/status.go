package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/adapters/tui"
	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the countdown and the selected day's tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.engine.Snapshot()
		day := app.sched.SelectedDay()

		if jsonOutput {
			return printJSON(map[string]any{
				"timer": timerStatusPayload(snap),
				"day":   dayPayload(day),
			})
		}

		tui.ShowStatus(snap, day, tui.NewTheme(&app.config.Theme))
		return nil
	},
}

// timerStatusPayload shapes an engine snapshot for JSON output.
func timerStatusPayload(snap engine.State) map[string]any {
	return map[string]any{
		"mode":              snap.Mode,
		"running":           snap.Running,
		"time_left_seconds": snap.TimeLeft,
		"focus_count":       snap.FocusCount,
		"settings":          snap.Settings,
		"last_event":        snap.LastEvent,
	}
}

// dayPayload shapes a day schedule for JSON output, with live stopwatch
// values resolved against the current wall clock.
func dayPayload(day *domain.DaySchedule) map[string]any {
	now := time.Now()
	tasks := make([]map[string]any, 0, len(day.Tasks))
	for _, t := range day.Tasks {
		tasks = append(tasks, map[string]any{
			"id":                  t.ID,
			"title":               t.Title,
			"active":              t.ID == day.ActiveTaskID,
			"tracked_seconds":     domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now),
			"total_focus_seconds": t.TotalFocusSeconds,
			"total_break_seconds": t.TotalBreakSeconds,
			"sessions":            len(t.Sessions),
		})
	}
	return map[string]any{
		"key":                   day.Key,
		"date":                  day.DateISO,
		"active_task_id":        day.ActiveTaskID,
		"tasks":                 tasks,
		"total_focus_seconds":   day.TotalFocusSeconds(),
		"total_break_seconds":   day.TotalBreakSeconds(),
		"total_tracked_seconds": day.TotalTrackedSeconds(now),
	}
}

// printJSON writes an indented JSON document to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatClock renders seconds as MM:SS for command output.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatDuration renders an accumulated seconds total like "1h05m" or "3m20s".
func formatDuration(secs int64) string {
	if secs >= 3600 {
		return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
	}
	if secs >= 60 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}
