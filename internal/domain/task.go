// Package domain contains the core entities of the pomoday ledger: the
// countdown settings, the session events the engine emits, and the day-keyed
// task schedule they are folded into. The entities are independent of any
// storage or UI infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrStopwatchRunning = errors.New("stopwatch is running")
	ErrNegativeSeconds  = errors.New("tracked seconds cannot be negative")
)

// SessionRecord is a SessionEvent as stored in a task's ledger, with a
// generated id and optional workspace context captured at log time.
type SessionRecord struct {
	ID string `json:"id"`
	SessionEvent
	GitBranch string `json:"git_branch,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// TaskEntry is one task within a day schedule. Focus/break seconds are
// derived by folding session events; tracked seconds accumulate from the
// per-day stopwatch, independent of the focus/break accounting.
type TaskEntry struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	TotalFocusSeconds int64           `json:"total_focus_seconds"`
	TotalBreakSeconds int64           `json:"total_break_seconds"`
	Sessions          []SessionRecord `json:"sessions"`
	TrackedSeconds    int64           `json:"tracked_seconds"`
	TimerStartedAt    *time.Time      `json:"timer_started_at,omitempty"`
}

// NewTaskEntry creates a task with a trimmed, non-empty title.
func NewTaskEntry(title string, now time.Time) (*TaskEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	return &TaskEntry{
		ID:        NewID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Sessions:  []SessionRecord{},
	}, nil
}

// Rename updates the title. Blank titles are rejected and the prior title
// is preserved.
func (t *TaskEntry) Rename(title string, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTaskTitle
	}
	t.Title = title
	t.UpdatedAt = now
	return nil
}

// StopwatchRunning returns true while the task's stopwatch is running.
func (t *TaskEntry) StopwatchRunning() bool {
	return t.TimerStartedAt != nil
}

// StartStopwatch marks the stopwatch as running since now. No-op if already
// running.
func (t *TaskEntry) StartStopwatch(now time.Time) {
	if t.TimerStartedAt != nil {
		return
	}
	started := now
	t.TimerStartedAt = &started
	t.UpdatedAt = now
}

// StopStopwatch folds the elapsed wall-clock time into TrackedSeconds and
// clears the running mark. No-op if not running.
func (t *TaskEntry) StopStopwatch(now time.Time) {
	if t.TimerStartedAt == nil {
		return
	}
	t.TrackedSeconds += elapsedWholeSeconds(*t.TimerStartedAt, now)
	t.TimerStartedAt = nil
	t.UpdatedAt = now
}

// SetTrackedSeconds overwrites the accumulated stopwatch time. Edits are
// only permitted while the stopwatch is stopped.
func (t *TaskEntry) SetTrackedSeconds(secs int64, now time.Time) error {
	if t.TimerStartedAt != nil {
		return ErrStopwatchRunning
	}
	if secs < 0 {
		return ErrNegativeSeconds
	}
	t.TrackedSeconds = secs
	t.UpdatedAt = now
	return nil
}

// ApplySession appends a session record and increments the focus or break
// aggregate. Append order is preserved; the aggregates are plain sums.
func (t *TaskEntry) ApplySession(rec SessionRecord, now time.Time) {
	t.Sessions = append(t.Sessions, rec)
	if rec.IsFocus() {
		t.TotalFocusSeconds += int64(rec.ElapsedSeconds)
	} else {
		t.TotalBreakSeconds += int64(rec.ElapsedSeconds)
	}
	t.UpdatedAt = now
}

// LiveTrackedSeconds computes the displayed tracked time for a task: the
// persisted total plus the whole seconds elapsed since the stopwatch started.
// Pure in its inputs so it is trivially testable with fixed clock values.
func LiveTrackedSeconds(tracked int64, startedAt *time.Time, now time.Time) int64 {
	if startedAt == nil {
		return tracked
	}
	return tracked + elapsedWholeSeconds(*startedAt, now)
}

func elapsedWholeSeconds(from, to time.Time) int64 {
	secs := int64(to.Sub(from) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Normalize repairs a task loaded from an older persisted shape: missing
// sessions default to empty, zeroed aggregates are recomputed by folding the
// session list, and impossible values are clamped.
func (t *TaskEntry) Normalize() {
	if t.Sessions == nil {
		t.Sessions = []SessionRecord{}
	}
	if t.TotalFocusSeconds == 0 && t.TotalBreakSeconds == 0 && len(t.Sessions) > 0 {
		for _, rec := range t.Sessions {
			if rec.IsFocus() {
				t.TotalFocusSeconds += int64(rec.ElapsedSeconds)
			} else {
				t.TotalBreakSeconds += int64(rec.ElapsedSeconds)
			}
		}
	}
	if t.TotalFocusSeconds < 0 {
		t.TotalFocusSeconds = 0
	}
	if t.TotalBreakSeconds < 0 {
		t.TotalBreakSeconds = 0
	}
	if t.TrackedSeconds < 0 {
		t.TrackedSeconds = 0
	}
	if t.TimerStartedAt != nil && t.TimerStartedAt.IsZero() {
		t.TimerStartedAt = nil
	}
}

// Clone returns a deep copy of the task.
func (t *TaskEntry) Clone() *TaskEntry {
	cp := *t
	cp.Sessions = append([]SessionRecord(nil), t.Sessions...)
	if t.TimerStartedAt != nil {
		started := *t.TimerStartedAt
		cp.TimerStartedAt = &started
	}
	return &cp
}
