package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/domain"
)

var (
	exportFormat string
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task ledger",
	Long:  "Export the selected day (or every day with --all) in markdown or CSV format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var days []*domain.DaySchedule
		if exportAll {
			days = app.sched.Days()
		} else {
			days = []*domain.DaySchedule{app.sched.SelectedDay()}
		}

		switch exportFormat {
		case "csv":
			return exportCSV(days)
		case "md":
			return exportMarkdown(days)
		default:
			return fmt.Errorf("unknown format %q (want md or csv)", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md or csv")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every day instead of the selected one")
}

func exportMarkdown(days []*domain.DaySchedule) error {
	fmt.Printf("# Pomoday Export\n\n")
	fmt.Printf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04"))

	now := time.Now()
	for _, day := range days {
		fmt.Printf("## %s\n\n", day.Key)
		fmt.Printf("Focus %s · Break %s · Tracked %s\n\n",
			formatDuration(day.TotalFocusSeconds()),
			formatDuration(day.TotalBreakSeconds()),
			formatDuration(day.TotalTrackedSeconds(now)))

		for _, t := range day.Tasks {
			tracked := domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now)
			fmt.Printf("- **%s** — tracked %s, focus %s",
				t.Title, formatDuration(tracked), formatDuration(t.TotalFocusSeconds))
			if len(t.Sessions) > 0 {
				fmt.Printf(" (%d sessions)", len(t.Sessions))
			}
			fmt.Println()
			for _, s := range t.Sessions {
				line := fmt.Sprintf("  - %s %s, %s", s.EndedAt.Format("15:04"),
					s.Mode.Label(), formatDuration(int64(s.ElapsedSeconds)))
				if s.Interrupted {
					line += " (interrupted)"
				}
				if s.GitBranch != "" {
					line += fmt.Sprintf(" [%s]", s.GitBranch)
				}
				fmt.Println(line)
			}
		}
		fmt.Println()
	}
	return nil
}

func exportCSV(days []*domain.DaySchedule) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	_ = w.Write([]string{
		"date", "task", "mode", "started_at", "ended_at",
		"scheduled_seconds", "elapsed_seconds", "interrupted",
		"git_branch", "git_commit",
	})

	for _, day := range days {
		for _, t := range day.Tasks {
			for _, s := range t.Sessions {
				_ = w.Write([]string{
					day.DateISO,
					t.Title,
					string(s.Mode),
					s.StartedAt.Format(time.RFC3339),
					s.EndedAt.Format(time.RFC3339),
					strconv.Itoa(s.ScheduledSeconds),
					strconv.Itoa(s.ElapsedSeconds),
					strconv.FormatBool(s.Interrupted),
					s.GitBranch,
					s.GitCommit,
				})
			}
		}
	}
	return nil
}
