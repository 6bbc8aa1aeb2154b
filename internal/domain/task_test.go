package domain

import (
	"errors"
	"testing"
	"time"
)

var taskNow = time.Date(2026, time.February, 2, 10, 0, 0, 0, time.Local)

func TestNewTaskEntry(t *testing.T) {
	t.Run("trims title", func(t *testing.T) {
		task, err := NewTaskEntry("  write report  ", taskNow)
		if err != nil {
			t.Fatalf("NewTaskEntry() error = %v", err)
		}
		if task.Title != "write report" {
			t.Errorf("Title = %q, want %q", task.Title, "write report")
		}
		if task.ID == "" {
			t.Error("ID is empty")
		}
		if task.Sessions == nil {
			t.Error("Sessions is nil, want empty slice")
		}
	})

	t.Run("rejects blank title", func(t *testing.T) {
		if _, err := NewTaskEntry("   ", taskNow); !errors.Is(err, ErrEmptyTaskTitle) {
			t.Errorf("error = %v, want ErrEmptyTaskTitle", err)
		}
	})
}

func TestTaskRename(t *testing.T) {
	task, _ := NewTaskEntry("old", taskNow)

	if err := task.Rename("  ", taskNow); !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Rename(blank) error = %v, want ErrEmptyTaskTitle", err)
	}
	if task.Title != "old" {
		t.Errorf("Title after rejected rename = %q, want %q", task.Title, "old")
	}

	if err := task.Rename("new", taskNow); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if task.Title != "new" {
		t.Errorf("Title = %q, want %q", task.Title, "new")
	}
}

func TestTaskStopwatch(t *testing.T) {
	task, _ := NewTaskEntry("task", taskNow)

	if task.StopwatchRunning() {
		t.Error("new task stopwatch running")
	}

	task.StartStopwatch(taskNow)
	if !task.StopwatchRunning() {
		t.Fatal("stopwatch not running after start")
	}

	// A second start must not move the reference point.
	task.StartStopwatch(taskNow.Add(30 * time.Second))
	if !task.TimerStartedAt.Equal(taskNow) {
		t.Errorf("TimerStartedAt moved on redundant start: %v", task.TimerStartedAt)
	}

	task.StopStopwatch(taskNow.Add(90 * time.Second))
	if task.StopwatchRunning() {
		t.Error("stopwatch still running after stop")
	}
	if task.TrackedSeconds != 90 {
		t.Errorf("TrackedSeconds = %v, want 90", task.TrackedSeconds)
	}

	// Stop while stopped is a no-op.
	task.StopStopwatch(taskNow.Add(5 * time.Minute))
	if task.TrackedSeconds != 90 {
		t.Errorf("TrackedSeconds after redundant stop = %v, want 90", task.TrackedSeconds)
	}
}

func TestTaskStopwatchAccumulates(t *testing.T) {
	task, _ := NewTaskEntry("task", taskNow)

	task.StartStopwatch(taskNow)
	task.StopStopwatch(taskNow.Add(60 * time.Second))
	task.StartStopwatch(taskNow.Add(5 * time.Minute))
	task.StopStopwatch(taskNow.Add(5*time.Minute + 30*time.Second))

	if task.TrackedSeconds != 90 {
		t.Errorf("TrackedSeconds = %v, want 90", task.TrackedSeconds)
	}
}

func TestSetTrackedSeconds(t *testing.T) {
	task, _ := NewTaskEntry("task", taskNow)

	if err := task.SetTrackedSeconds(120, taskNow); err != nil {
		t.Fatalf("SetTrackedSeconds() error = %v", err)
	}
	if task.TrackedSeconds != 120 {
		t.Errorf("TrackedSeconds = %v, want 120", task.TrackedSeconds)
	}

	if err := task.SetTrackedSeconds(-1, taskNow); !errors.Is(err, ErrNegativeSeconds) {
		t.Errorf("error = %v, want ErrNegativeSeconds", err)
	}

	task.StartStopwatch(taskNow)
	if err := task.SetTrackedSeconds(0, taskNow); !errors.Is(err, ErrStopwatchRunning) {
		t.Errorf("error = %v, want ErrStopwatchRunning", err)
	}
}

func TestApplySession(t *testing.T) {
	task, _ := NewTaskEntry("task", taskNow)

	focus := SessionRecord{ID: NewID(), SessionEvent: SessionEvent{
		Mode: ModeFocus, ElapsedSeconds: 1500, ScheduledSeconds: 1500,
	}}
	brk := SessionRecord{ID: NewID(), SessionEvent: SessionEvent{
		Mode: ModeBreak, ElapsedSeconds: 300, ScheduledSeconds: 300,
	}}
	long := SessionRecord{ID: NewID(), SessionEvent: SessionEvent{
		Mode: ModeLongBreak, ElapsedSeconds: 900, ScheduledSeconds: 900,
	}}

	task.ApplySession(focus, taskNow)
	task.ApplySession(brk, taskNow)
	task.ApplySession(long, taskNow)

	if task.TotalFocusSeconds != 1500 {
		t.Errorf("TotalFocusSeconds = %v, want 1500", task.TotalFocusSeconds)
	}
	if task.TotalBreakSeconds != 1200 {
		t.Errorf("TotalBreakSeconds = %v, want 1200 (both break variants)", task.TotalBreakSeconds)
	}
	if len(task.Sessions) != 3 {
		t.Fatalf("len(Sessions) = %v, want 3", len(task.Sessions))
	}
	// Append order preserved.
	if task.Sessions[0].ID != focus.ID || task.Sessions[2].ID != long.ID {
		t.Error("session order not preserved")
	}
}

func TestLiveTrackedSeconds(t *testing.T) {
	if got := LiveTrackedSeconds(100, nil, taskNow); got != 100 {
		t.Errorf("LiveTrackedSeconds(stopped) = %v, want 100", got)
	}

	started := taskNow
	if got := LiveTrackedSeconds(100, &started, taskNow.Add(45*time.Second)); got != 145 {
		t.Errorf("LiveTrackedSeconds(running) = %v, want 145", got)
	}

	// Clock skew never subtracts.
	if got := LiveTrackedSeconds(100, &started, taskNow.Add(-time.Minute)); got != 100 {
		t.Errorf("LiveTrackedSeconds(skewed) = %v, want 100", got)
	}
}

func TestTaskNormalize(t *testing.T) {
	t.Run("refolds zeroed aggregates", func(t *testing.T) {
		task := &TaskEntry{
			ID:    NewID(),
			Title: "restored",
			Sessions: []SessionRecord{
				{SessionEvent: SessionEvent{Mode: ModeFocus, ElapsedSeconds: 600}},
				{SessionEvent: SessionEvent{Mode: ModeBreak, ElapsedSeconds: 120}},
			},
		}
		task.Normalize()
		if task.TotalFocusSeconds != 600 {
			t.Errorf("TotalFocusSeconds = %v, want 600", task.TotalFocusSeconds)
		}
		if task.TotalBreakSeconds != 120 {
			t.Errorf("TotalBreakSeconds = %v, want 120", task.TotalBreakSeconds)
		}
	})

	t.Run("clamps negatives and clears zero-time stopwatch", func(t *testing.T) {
		zero := time.Time{}
		task := &TaskEntry{ID: NewID(), Title: "x", TrackedSeconds: -5, TimerStartedAt: &zero}
		task.Normalize()
		if task.TrackedSeconds != 0 {
			t.Errorf("TrackedSeconds = %v, want 0", task.TrackedSeconds)
		}
		if task.TimerStartedAt != nil {
			t.Error("TimerStartedAt not cleared")
		}
		if task.Sessions == nil {
			t.Error("Sessions is nil after Normalize")
		}
	})
}

func TestTaskClone(t *testing.T) {
	task, _ := NewTaskEntry("task", taskNow)
	task.StartStopwatch(taskNow)
	task.ApplySession(SessionRecord{ID: NewID(), SessionEvent: SessionEvent{Mode: ModeFocus, ElapsedSeconds: 60}}, taskNow)

	cp := task.Clone()
	cp.Title = "changed"
	cp.Sessions[0].ElapsedSeconds = 999
	*cp.TimerStartedAt = taskNow.Add(time.Hour)

	if task.Title != "task" {
		t.Error("clone shares Title")
	}
	if task.Sessions[0].ElapsedSeconds != 60 {
		t.Error("clone shares Sessions backing array")
	}
	if !task.TimerStartedAt.Equal(taskNow) {
		t.Error("clone shares TimerStartedAt pointer")
	}
}
