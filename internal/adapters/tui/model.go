// Package tui implements the fullscreen Bubbletea interface: the countdown
// with progress bar on top, the selected day's task board below.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/engine"
	"github.com/pomoday/pomoday/internal/scheduler"
)

// tickMsg is sent on every display tick.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubbletea model for the timer board.
type Model struct {
	engine *engine.Engine
	sched  *scheduler.Scheduler
	theme  Theme

	// persistTimer mirrors the engine snapshot after user-driven mutations.
	persistTimer func()
	// toggleNotifications flips the notification setting and returns the new
	// value.
	toggleNotifications func() bool

	progress progress.Model
	input    textinput.Model

	snap engine.State
	day  *domain.DaySchedule
	now  time.Time

	adding bool
	cursor int

	status      string
	statusUntil time.Time

	width  int
	height int
}

// NewModel creates the TUI model.
func NewModel(eng *engine.Engine, sched *scheduler.Scheduler, theme Theme, persistTimer func(), toggleNotifications func() bool) Model {
	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 120

	return Model{
		engine:              eng,
		sched:               sched,
		theme:               theme,
		persistTimer:        persistTimer,
		toggleNotifications: toggleNotifications,
		progress:            progress.New(progress.WithSolidFill(theme.FocusColor)),
		input:               input,
		snap:                eng.Snapshot(),
		day:                 sched.SelectedDay(),
		now:                 time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = clampInt(msg.Width-8, 10, 60)
		return m, nil

	case tickMsg:
		m.refresh(time.Time(msg))
		return m, tickCmd()

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBoard(msg)
	}

	return m, nil
}

// refresh pulls fresh snapshots once a second. The day is re-read from the
// scheduler rather than cached, so session logging stays visible and the "t"
// binding works across midnight while the board stays open.
func (m *Model) refresh(now time.Time) {
	m.now = now
	m.snap = m.engine.Snapshot()
	m.day = m.sched.SelectedDay()
	if m.cursor >= len(m.day.Tasks) {
		m.cursor = len(m.day.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.status != "" && now.After(m.statusUntil) {
		m.status = ""
	}
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if _, err := m.sched.AddTask(m.input.Value()); err != nil {
			m.setStatus("Title cannot be empty")
		}
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		m.day = m.sched.SelectedDay()
		return m, nil
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.persistTimer()
		return m, tea.Quit

	case " ":
		if m.snap.Running {
			m.engine.Pause()
		} else {
			m.engine.Start()
		}
		m.persistTimer()
		m.snap = m.engine.Snapshot()
		return m, nil

	case "s":
		m.engine.Skip()
		m.persistTimer()
		m.snap = m.engine.Snapshot()
		m.day = m.sched.SelectedDay()
		return m, nil

	case "r":
		m.engine.Reset()
		m.persistTimer()
		m.snap = m.engine.Snapshot()
		return m, nil

	case "a":
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink

	case "j", "down":
		if m.cursor < len(m.day.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		if m.cursor < len(m.day.Tasks) {
			m.sched.SetActiveTask(m.day.Tasks[m.cursor].ID)
			m.day = m.sched.SelectedDay()
		}
		return m, nil

	case "x":
		m.sched.SetActiveTask("")
		m.day = m.sched.SelectedDay()
		return m, nil

	case "d":
		if m.cursor < len(m.day.Tasks) {
			if err := m.sched.DeleteTask(m.day.Tasks[m.cursor].ID); err == nil {
				m.day = m.sched.SelectedDay()
			}
		}
		return m, nil

	case "[", "]":
		m.cycleDay(msg.String() == "]")
		return m, nil

	case "t":
		m.sched.SetSelectedDay(m.sched.TodayKey())
		m.day = m.sched.SelectedDay()
		m.cursor = 0
		return m, nil

	case "tab":
		if m.toggleNotifications != nil {
			if m.toggleNotifications() {
				m.setStatus("Notifications on")
			} else {
				m.setStatus("Notifications off")
			}
		}
		return m, nil
	}

	return m, nil
}

// cycleDay moves the selection through the known days, newest first.
func (m *Model) cycleDay(forward bool) {
	days := m.sched.Days()
	if len(days) == 0 {
		return
	}
	current := m.sched.SelectedKey()
	idx := 0
	for i, d := range days {
		if d.Key == current {
			idx = i
			break
		}
	}
	if forward {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= len(days) {
		return
	}
	m.sched.SetSelectedDay(days[idx].Key)
	m.day = m.sched.SelectedDay()
	m.cursor = 0
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusUntil = m.now.Add(3 * time.Second)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the fullscreen program and blocks until the user quits.
func Run(eng *engine.Engine, sched *scheduler.Scheduler, theme Theme, persistTimer func(), toggleNotifications func() bool) error {
	model := NewModel(eng, sched, theme, persistTimer, toggleNotifications)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
