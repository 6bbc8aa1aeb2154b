package tui

import (
	"fmt"
	"strings"

	"github.com/pomoday/pomoday/internal/domain"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + m.theme.Title.Render("🍅 pomoday") + "  " + m.theme.Help.Render(m.day.Key) + "\n\n")

	b.WriteString(m.renderTimer())
	b.WriteString("\n")
	b.WriteString(m.renderTasks())

	if m.adding {
		b.WriteString("\n  " + m.theme.Task.Render("New task: ") + m.input.View() + "\n")
	}

	if m.status != "" {
		b.WriteString("\n  " + m.theme.Help.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + m.theme.Help.Render(helpLine(m.adding)) + "\n")
	return b.String()
}

func (m Model) renderTimer() string {
	modeStyle := m.theme.Focus
	if m.snap.Mode.IsBreak() {
		modeStyle = m.theme.Break
	}
	if !m.snap.Running {
		modeStyle = m.theme.Paused
	}

	state := "paused"
	if m.snap.Running {
		state = "running"
	}

	total := m.snap.Settings.SecondsFor(m.snap.Mode)
	percent := 0.0
	if total > 0 {
		percent = 1.0 - float64(m.snap.TimeLeft)/float64(total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s  %s\n",
		modeStyle.Render(m.snap.Mode.Label()),
		modeStyle.Render(formatClock(m.snap.TimeLeft)),
		m.theme.Help.Render("("+state+")"),
	)
	b.WriteString("  " + m.progress.ViewAs(percent) + "\n")
	fmt.Fprintf(&b, "  %s\n", m.theme.Help.Render(focusDots(m.snap.FocusCount, m.snap.Settings)))
	return b.String()
}

func (m Model) renderTasks() string {
	if len(m.day.Tasks) == 0 {
		return "  " + m.theme.Help.Render("No tasks yet — press a to add one") + "\n"
	}

	var b strings.Builder
	for i, t := range m.day.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		marker := " "
		style := m.theme.Task
		if t.ID == m.day.ActiveTaskID {
			marker = "●"
			style = m.theme.Active
		}

		tracked := domain.LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, m.now)
		line := fmt.Sprintf("%s%s %s  %s", cursor, marker, style.Render(t.Title),
			m.theme.Help.Render(fmt.Sprintf("⏱ %s · 🍅 %s", formatSeconds(tracked), formatSeconds(t.TotalFocusSeconds))))
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func helpLine(adding bool) string {
	if adding {
		return "enter save · esc cancel"
	}
	return "space start/pause · s skip · r reset · a add · enter track · x stop · d delete · [/] day · t today · tab notifications · q quit"
}

// formatClock renders seconds as MM:SS (or H:MM:SS past the hour).
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

// formatSeconds renders an accumulated total like "1h05m" or "3m20s".
func formatSeconds(secs int64) string {
	if secs >= 3600 {
		return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
	}
	if secs >= 60 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// focusDots renders completed focus sessions within the current long-break
// cycle, e.g. "●●○○".
func focusDots(count int, settings domain.TimerSettings) string {
	if !settings.EnableLongBreak {
		return fmt.Sprintf("%d focus sessions", count)
	}
	interval := settings.LongBreakInterval
	done := count % interval
	if done == 0 && count > 0 {
		done = interval
	}
	return strings.Repeat("●", done) + strings.Repeat("○", interval-done)
}
