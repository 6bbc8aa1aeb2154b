package domain

import (
	"sort"
	"time"
)

// DaySchedule is the per-calendar-day ledger: an ordered task list plus the
// id of the task attached to the day's exclusive stopwatch.
type DaySchedule struct {
	Key          string       `json:"key"`
	DateISO      string       `json:"date_iso"`
	CreatedAt    time.Time    `json:"created_at"`
	ActiveTaskID string       `json:"active_task_id,omitempty"`
	Tasks        []*TaskEntry `json:"tasks"`
}

// NewDaySchedule creates an empty schedule for the day containing at.
func NewDaySchedule(at time.Time) *DaySchedule {
	return &DaySchedule{
		Key:       DayKeyFor(at),
		DateISO:   ISODateFor(at),
		CreatedAt: at,
		Tasks:     []*TaskEntry{},
	}
}

// Task returns the task with the given id, or nil.
func (d *DaySchedule) Task(id string) *TaskEntry {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ActiveTask returns the task attached to the running stopwatch, or nil.
func (d *DaySchedule) ActiveTask() *TaskEntry {
	if d.ActiveTaskID == "" {
		return nil
	}
	return d.Task(d.ActiveTaskID)
}

// EnforceStopwatch restores the single-stopwatch invariant: only the active
// task may have a running stopwatch, and the active task must be running.
// Any other running stopwatch is stopped with its elapsed time folded in.
func (d *DaySchedule) EnforceStopwatch(now time.Time) {
	if d.ActiveTaskID != "" && d.Task(d.ActiveTaskID) == nil {
		d.ActiveTaskID = ""
	}
	for _, t := range d.Tasks {
		if t.ID != d.ActiveTaskID && t.StopwatchRunning() {
			t.StopStopwatch(now)
		}
	}
	if active := d.ActiveTask(); active != nil && !active.StopwatchRunning() {
		active.StartStopwatch(now)
	}
}

// TotalFocusSeconds sums the focus aggregate across the day's tasks.
func (d *DaySchedule) TotalFocusSeconds() int64 {
	var total int64
	for _, t := range d.Tasks {
		total += t.TotalFocusSeconds
	}
	return total
}

// TotalBreakSeconds sums the break aggregate across the day's tasks.
func (d *DaySchedule) TotalBreakSeconds() int64 {
	var total int64
	for _, t := range d.Tasks {
		total += t.TotalBreakSeconds
	}
	return total
}

// TotalTrackedSeconds sums the stopwatch aggregate across the day's tasks,
// including live time for a running stopwatch.
func (d *DaySchedule) TotalTrackedSeconds(now time.Time) int64 {
	var total int64
	for _, t := range d.Tasks {
		total += LiveTrackedSeconds(t.TrackedSeconds, t.TimerStartedAt, now)
	}
	return total
}

// Normalize repairs a day loaded from storage.
func (d *DaySchedule) Normalize() {
	if d.Tasks == nil {
		d.Tasks = []*TaskEntry{}
	}
	for _, t := range d.Tasks {
		t.Normalize()
	}
	if d.DateISO == "" {
		if date, ok := ParseDayKey(d.Key); ok {
			d.DateISO = ISODateFor(date)
		}
	}
	if d.ActiveTaskID != "" && d.Task(d.ActiveTaskID) == nil {
		d.ActiveTaskID = ""
	}
}

// Clone returns a deep copy of the day.
func (d *DaySchedule) Clone() *DaySchedule {
	cp := *d
	cp.Tasks = make([]*TaskEntry, len(d.Tasks))
	for i, t := range d.Tasks {
		cp.Tasks[i] = t.Clone()
	}
	return &cp
}

// ScheduleState maps day key to day schedule. Keys are unique; consumers
// sort by DateISO descending for display.
type ScheduleState map[string]*DaySchedule

// Normalize repairs every day in the state.
func (s ScheduleState) Normalize() {
	for key, day := range s {
		if day == nil {
			delete(s, key)
			continue
		}
		if day.Key == "" {
			day.Key = key
		}
		day.Normalize()
	}
}

// SortedDays returns the days ordered by DateISO descending (most recent
// first), with the display key as tiebreaker.
func (s ScheduleState) SortedDays() []*DaySchedule {
	days := make([]*DaySchedule, 0, len(s))
	for _, d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].DateISO != days[j].DateISO {
			return days[i].DateISO > days[j].DateISO
		}
		return days[i].Key < days[j].Key
	})
	return days
}

// Clone returns a deep copy of the state.
func (s ScheduleState) Clone() ScheduleState {
	cp := make(ScheduleState, len(s))
	for key, day := range s {
		cp[key] = day.Clone()
	}
	return cp
}
