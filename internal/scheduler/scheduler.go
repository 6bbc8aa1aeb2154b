// Package scheduler maintains the day-keyed task ledger: per-day task lists
// with focus/break session accounting and an exclusive per-day stopwatch.
// It consumes SessionEvents from the countdown engine and persists every
// mutation through the state store.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/ports"
)

// Scheduler owns the ScheduleState. All operations take the lock, restore
// the single-stopwatch invariant, and re-persist; the in-memory state stays
// authoritative when persistence fails.
type Scheduler struct {
	mu       sync.Mutex
	days     domain.ScheduleState
	selected string

	store ports.StateStore
	git   ports.GitDetector
	clock func() time.Time
}

// New hydrates a scheduler from the store. Missing or malformed persisted
// state falls back to an empty schedule selected on today. The git detector
// is optional; when present, logged sessions carry workspace context.
func New(store ports.StateStore, git ports.GitDetector) *Scheduler {
	s := &Scheduler{
		store: store,
		git:   git,
		clock: time.Now,
	}

	days, err := store.LoadSchedule()
	if err != nil {
		warnf("failed to load schedule: %v", err)
	}
	if days == nil {
		days = domain.ScheduleState{}
	}
	days.Normalize()
	s.days = days

	selected, err := store.LoadSelectedDay()
	if err != nil {
		warnf("failed to load selected day: %v", err)
	}
	if selected == "" {
		selected = s.todayKeyLocked()
	}
	s.selected = selected
	s.ensureDayLocked(selected)

	return s
}

// TodayKey returns the day key for the current wall-clock day. Callers
// re-read it periodically so a tab left open across midnight still points at
// the right day.
func (s *Scheduler) TodayKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todayKeyLocked()
}

// SelectedKey returns the key of the currently viewed day.
func (s *Scheduler) SelectedKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedDay returns a deep copy of the currently viewed day.
func (s *Scheduler) SelectedDay() *domain.DaySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days[s.selected].Clone()
}

// Day returns a deep copy of the named day, or nil.
func (s *Scheduler) Day(key string) *domain.DaySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.days[key]
	if !ok {
		return nil
	}
	return day.Clone()
}

// Days returns deep copies of all days, most recent first.
func (s *Scheduler) Days() []*domain.DaySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := s.days.SortedDays()
	out := make([]*domain.DaySchedule, len(sorted))
	for i, d := range sorted {
		out[i] = d.Clone()
	}
	return out
}

// SetSelectedDay switches the viewing context, synthesizing an empty day for
// unknown keys so selection never fails.
func (s *Scheduler) SetSelectedDay(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDayLocked(key)
	s.selected = key
	s.persistLocked()
}

// AddTask appends a new task to the selected day. When the day has no active
// task, the new task is auto-activated and its stopwatch starts immediately.
func (s *Scheduler) AddTask(title string) (*domain.TaskEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	task, err := domain.NewTaskEntry(title, now)
	if err != nil {
		return nil, err
	}

	day := s.ensureDayLocked(s.selected)
	day.Tasks = append(day.Tasks, task)
	if day.ActiveTaskID == "" {
		day.ActiveTaskID = task.ID
		task.StartStopwatch(now)
	}
	day.EnforceStopwatch(now)
	s.persistLocked()

	return task.Clone(), nil
}

// UpdateTaskTitle renames a task in the selected day. Blank titles are
// rejected and the prior title is preserved.
func (s *Scheduler) UpdateTaskTitle(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.ensureDayLocked(s.selected)
	task := day.Task(id)
	if task == nil {
		return domain.ErrTaskNotFound
	}
	if err := task.Rename(title, s.clock()); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

// DeleteTask removes a task from the selected day. If it was the active one,
// activation falls through to the first remaining task in list order.
func (s *Scheduler) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	day := s.ensureDayLocked(s.selected)
	idx := -1
	for i, t := range day.Tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrTaskNotFound
	}

	wasActive := day.ActiveTaskID == id
	day.Tasks = append(day.Tasks[:idx], day.Tasks[idx+1:]...)

	if wasActive {
		day.ActiveTaskID = ""
		if len(day.Tasks) > 0 {
			day.ActiveTaskID = day.Tasks[0].ID
			day.Tasks[0].StartStopwatch(now)
		}
	}
	day.EnforceStopwatch(now)
	s.persistLocked()
	return nil
}

// SetActiveTask attaches the day's stopwatch to the given task, stopping
// whatever was running and folding its elapsed time in. An empty or unknown
// id stops the stopwatch and leaves nothing active.
func (s *Scheduler) SetActiveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	day := s.ensureDayLocked(s.selected)

	if current := day.ActiveTask(); current != nil {
		current.StopStopwatch(now)
	}
	day.ActiveTaskID = ""

	if id != "" {
		if task := day.Task(id); task != nil {
			day.ActiveTaskID = id
			task.StartStopwatch(now)
		}
	}
	day.EnforceStopwatch(now)
	s.persistLocked()
}

// SetTrackedSeconds overwrites a task's accumulated stopwatch time. Rejected
// while that task's stopwatch is running.
func (s *Scheduler) SetTrackedSeconds(id string, secs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.ensureDayLocked(s.selected)
	task := day.Task(id)
	if task == nil {
		return domain.ErrTaskNotFound
	}
	if err := task.SetTrackedSeconds(secs, s.clock()); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

// DeleteDay removes a day schedule. A deleted selection falls back to today
// if it exists, else the most recent remaining day, else a fresh today.
func (s *Scheduler) DeleteDay(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.days[key]; !ok {
		return domain.ErrDayNotFound
	}
	delete(s.days, key)

	if s.selected == key {
		today := s.todayKeyLocked()
		if _, ok := s.days[today]; ok {
			s.selected = today
		} else if sorted := s.days.SortedDays(); len(sorted) > 0 {
			s.selected = sorted[0].Key
		} else {
			s.ensureDayLocked(today)
			s.selected = today
		}
	}
	s.persistLocked()
	return nil
}

// ClearSchedule drops every day and starts over with an empty today.
func (s *Scheduler) ClearSchedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.days = domain.ScheduleState{}
	today := s.todayKeyLocked()
	s.ensureDayLocked(today)
	s.selected = today
	s.persistLocked()
}

// LogSession folds a completed interval into the ledger. The day is resolved
// from the event's end time, not "now", so a session completing at a day
// boundary logs against the day it ended in. Events are dropped when that
// day has no active task.
func (s *Scheduler) LogSession(ev domain.SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	day := s.ensureDayLocked(domain.DayKeyFor(ev.EndedAt))
	task := day.ActiveTask()
	if task == nil {
		return
	}

	rec := domain.SessionRecord{
		ID:           domain.NewID(),
		SessionEvent: ev,
	}
	if s.git != nil && s.git.IsAvailable() {
		if info, err := s.git.Detect(context.Background(), ""); err == nil && info != nil {
			rec.GitBranch = info.Branch
			rec.GitCommit = info.Commit
		}
	}

	task.ApplySession(rec, now)
	day.EnforceStopwatch(now)
	s.persistLocked()
}

// FindTasks fuzzy-matches task titles across the whole schedule, best match
// first.
func (s *Scheduler) FindTasks(query string) []*domain.TaskEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*domain.TaskEntry
	for _, day := range s.days.SortedDays() {
		all = append(all, day.Tasks...)
	}

	titles := make([]string, len(all))
	for i, t := range all {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(query, titles)
	result := make([]*domain.TaskEntry, 0, len(matches))
	for _, m := range matches {
		result = append(result, all[m.Index].Clone())
	}
	return result
}

func (s *Scheduler) todayKeyLocked() string {
	return domain.DayKeyFor(s.clock())
}

// ensureDayLocked returns the day for key, synthesizing an empty one from
// the key's parsed date (or "now" when unparseable) if it does not exist.
func (s *Scheduler) ensureDayLocked(key string) *domain.DaySchedule {
	if day, ok := s.days[key]; ok {
		return day
	}

	at := s.clock()
	if date, ok := domain.ParseDayKey(key); ok {
		at = date
	}
	day := domain.NewDaySchedule(at)
	// Keep the caller's key verbatim so selection round-trips even for keys
	// whose weekday prefix does not match the parsed date.
	day.Key = key
	s.days[key] = day
	return day
}

// persistLocked mirrors the in-memory state to the store. Write failures are
// warned and swallowed; the session continues on in-memory state.
func (s *Scheduler) persistLocked() {
	if err := s.store.SaveSchedule(s.days); err != nil {
		warnf("failed to persist schedule: %v", err)
	}
	if err := s.store.SaveSelectedDay(s.selected); err != nil {
		warnf("failed to persist selected day: %v", err)
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
