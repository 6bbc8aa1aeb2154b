package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/engine"
)

// ShowStatus prints a one-shot status box for `pomoday status`.
func ShowStatus(snap engine.State, day *domain.DaySchedule, theme Theme) {
	width := 64
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 20 && w < width+4 {
		width = w - 4
	}

	modeStyle := theme.Focus
	if snap.Mode.IsBreak() {
		modeStyle = theme.Break
	}
	if !snap.Running {
		modeStyle = theme.Paused
	}

	state := "paused"
	if snap.Running {
		state = "running"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s (%s)\n",
		modeStyle.Render(snap.Mode.Label()),
		modeStyle.Render(formatClock(snap.TimeLeft)),
		state,
	)
	fmt.Fprintf(&b, "%s\n\n", theme.Help.Render(focusDots(snap.FocusCount, snap.Settings)))

	now := time.Now()
	fmt.Fprintf(&b, "%s\n", theme.Title.Render(day.Key))
	fmt.Fprintf(&b, "Focus %s · Break %s · Tracked %s\n",
		formatSeconds(day.TotalFocusSeconds()),
		formatSeconds(day.TotalBreakSeconds()),
		formatSeconds(day.TotalTrackedSeconds(now)),
	)

	for _, t := range day.Tasks {
		marker := " "
		style := theme.Task
		if t.ID == day.ActiveTaskID {
			marker = "●"
			style = theme.Active
		}
		tracked := domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now)
		fmt.Fprintf(&b, "%s %s  %s\n", marker, style.Render(t.Title),
			theme.Help.Render(fmt.Sprintf("⏱ %s · 🍅 %s", formatSeconds(tracked), formatSeconds(t.TotalFocusSeconds))))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width)
	fmt.Println(box.Render(strings.TrimRight(b.String(), "\n")))
}
