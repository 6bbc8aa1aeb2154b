package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pomoday/pomoday/internal/domain"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of focus time per day",
	Long:  `Display a terminal dashboard with focus time, break time and stopwatch totals over the last days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		cutoff := now.AddDate(0, 0, -statsDays)
		cutoffISO := domain.ISODateFor(cutoff)

		var days []*domain.DaySchedule
		for _, d := range app.sched.Days() {
			if d.DateISO >= cutoffISO {
				days = append(days, d)
			}
		}

		if jsonOutput {
			payload := make([]map[string]any, 0, len(days))
			for _, d := range days {
				payload = append(payload, dayPayload(d))
			}
			return printJSON(payload)
		}

		fmt.Println()
		renderStats(days, statsDays, now)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days to include")
}

func renderStats(days []*domain.DaySchedule, window int, now time.Time) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E05B5B"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E05B5B"))

	fmt.Printf("  %s\n", titleStyle.Render(fmt.Sprintf("Last %d days", window)))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	var totalFocus, totalBreak, totalTracked int64
	var sessions int
	maxFocus := int64(0)
	for _, d := range days {
		f := d.TotalFocusSeconds()
		totalFocus += f
		totalBreak += d.TotalBreakSeconds()
		totalTracked += d.TotalTrackedSeconds(now)
		for _, t := range d.Tasks {
			sessions += len(t.Sessions)
		}
		if f > maxFocus {
			maxFocus = f
		}
	}

	fmt.Printf("  Total: %s focus, %s break, %s tracked, %s sessions\n\n",
		valueStyle.Render(formatDuration(totalFocus)),
		valueStyle.Render(formatDuration(totalBreak)),
		valueStyle.Render(formatDuration(totalTracked)),
		valueStyle.Render(fmt.Sprintf("%d", sessions)),
	)

	if len(days) == 0 || totalFocus+totalBreak+totalTracked == 0 {
		fmt.Printf("  %s\n\n", dimStyle.Render("Nothing logged in this period."))
		return
	}

	fmt.Printf("  %s\n", dimStyle.Render("Focus time by day"))
	maxBarWidth := 30
	for _, d := range days {
		focus := d.TotalFocusSeconds()
		barWidth := 0
		if maxFocus > 0 {
			barWidth = int(math.Round(float64(focus) / float64(maxFocus) * float64(maxBarWidth)))
		}
		if barWidth < 1 && focus > 0 {
			barWidth = 1
		}
		fmt.Printf("  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%-10s", d.DateISO)),
			barStyle.Render(strings.Repeat("█", barWidth)),
			formatDuration(focus),
		)
	}
	fmt.Println()
}
