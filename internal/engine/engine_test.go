package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/pomoday/pomoday/internal/domain"
)

// fakeClock is a mutex-guarded manual clock. The engine's internal ticker may
// read it concurrently with the test advancing it.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.May, 4, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Tick(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestEngine(settings domain.TimerSettings) (*Engine, *fakeClock) {
	clock := newFakeClock()
	e := New(settings)
	e.clock = clock.Now
	return e, clock
}

// start begins the countdown but stops the wall-clock ticker so only explicit
// Advance calls drive transitions.
func start(e *Engine) {
	e.Start()
	e.Stop()
}

func TestNewEngine(t *testing.T) {
	e, _ := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	snap := e.Snapshot()
	if snap.Mode != domain.ModeFocus {
		t.Errorf("Mode = %v, want focus", snap.Mode)
	}
	if snap.Running {
		t.Error("new engine running, want paused")
	}
	if snap.TimeLeft != 1500 {
		t.Errorf("TimeLeft = %v, want 1500", snap.TimeLeft)
	}
	if snap.FocusCount != 0 {
		t.Errorf("FocusCount = %v, want 0", snap.FocusCount)
	}
}

func TestStartPause(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	start(e)
	clock.Tick(10 * time.Second)

	if got := e.Snapshot().TimeLeft; got != 1490 {
		t.Errorf("TimeLeft after 10s = %v, want 1490", got)
	}

	e.Pause()
	clock.Tick(time.Hour)

	snap := e.Snapshot()
	if snap.Running {
		t.Error("running after Pause")
	}
	if snap.TimeLeft != 1490 {
		t.Errorf("TimeLeft advanced while paused: %v, want 1490", snap.TimeLeft)
	}

	// Resume continues from where it stopped.
	start(e)
	clock.Tick(90 * time.Second)
	if got := e.Snapshot().TimeLeft; got != 1400 {
		t.Errorf("TimeLeft after resume = %v, want 1400", got)
	}
}

func TestTimeLeftNeverNegative(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	start(e)
	clock.Tick(2 * time.Hour)

	if got := e.Snapshot().TimeLeft; got != 0 {
		t.Errorf("TimeLeft = %v, want clamped to 0", got)
	}
}

func TestNaturalExpiry(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	var events []domain.SessionEvent
	e.Subscribe(func(ev domain.SessionEvent) { events = append(events, ev) })

	start(e)
	clock.Tick(25 * time.Minute)
	e.Advance()

	if len(events) != 1 {
		t.Fatalf("len(events) = %v, want 1", len(events))
	}
	ev := events[0]
	if ev.Mode != domain.ModeFocus {
		t.Errorf("event Mode = %v, want focus", ev.Mode)
	}
	if ev.ScheduledSeconds != 1500 || ev.ElapsedSeconds != 1500 {
		t.Errorf("scheduled/elapsed = %v/%v, want 1500/1500", ev.ScheduledSeconds, ev.ElapsedSeconds)
	}
	if ev.Interrupted {
		t.Error("natural expiry marked interrupted")
	}
	if got := ev.EndedAt.Sub(ev.StartedAt); got != 25*time.Minute {
		t.Errorf("event span = %v, want 25m", got)
	}

	snap := e.Snapshot()
	if snap.Mode != domain.ModeBreak {
		t.Errorf("Mode after focus = %v, want break", snap.Mode)
	}
	if !snap.Running {
		t.Error("countdown not running after transition")
	}
	if snap.TimeLeft != 300 {
		t.Errorf("TimeLeft = %v, want 300", snap.TimeLeft)
	}
	if snap.FocusCount != 1 {
		t.Errorf("FocusCount = %v, want 1", snap.FocusCount)
	}
}

func TestAdvanceIsIdempotent(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	var count int
	e.Subscribe(func(domain.SessionEvent) { count++ })

	start(e)
	clock.Tick(25 * time.Minute)
	e.Advance()
	e.Advance()

	if count != 1 {
		t.Errorf("events = %v, want 1 (second Advance mid-break must not fire)", count)
	}
}

func TestSkipEmitsInterruptedEvent(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	var events []domain.SessionEvent
	e.Subscribe(func(ev domain.SessionEvent) { events = append(events, ev) })

	start(e)
	clock.Tick(3 * time.Second)
	e.Skip()

	if len(events) != 1 {
		t.Fatalf("len(events) = %v, want 1", len(events))
	}
	ev := events[0]
	if ev.ScheduledSeconds != 1500 {
		t.Errorf("ScheduledSeconds = %v, want 1500", ev.ScheduledSeconds)
	}
	if ev.ElapsedSeconds != 3 {
		t.Errorf("ElapsedSeconds = %v, want 3", ev.ElapsedSeconds)
	}
	if !ev.Interrupted {
		t.Error("skipped event not marked interrupted")
	}
}

func TestLongBreakCycle(t *testing.T) {
	e, _ := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	// Skip through intervals and record the mode sequence.
	var modes []domain.TimerMode
	for i := 0; i < 8; i++ {
		modes = append(modes, e.Snapshot().Mode)
		e.Skip()
	}

	want := []domain.TimerMode{
		domain.ModeFocus, domain.ModeBreak,
		domain.ModeFocus, domain.ModeBreak,
		domain.ModeFocus, domain.ModeBreak,
		domain.ModeFocus, domain.ModeLongBreak,
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Fatalf("modes = %v, want %v", modes, want)
		}
	}

	if got := e.Snapshot().Mode; got != domain.ModeFocus {
		t.Errorf("Mode after long break = %v, want focus", got)
	}
}

func TestLongBreakDisabled(t *testing.T) {
	settings := domain.DefaultTimerSettings()
	settings.EnableLongBreak = false
	e, _ := newTestEngine(settings)
	defer e.Stop()

	for i := 0; i < 8; i++ {
		if mode := e.Snapshot().Mode; mode == domain.ModeLongBreak {
			t.Fatalf("long break reached on interval %d with cycle disabled", i)
		}
		e.Skip()
	}
}

func TestReset(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	var count int
	e.Subscribe(func(domain.SessionEvent) { count++ })

	start(e)
	clock.Tick(time.Minute)
	e.Skip()
	e.Skip()
	e.Reset()

	snap := e.Snapshot()
	if snap.Mode != domain.ModeFocus {
		t.Errorf("Mode = %v, want focus", snap.Mode)
	}
	if snap.Running {
		t.Error("running after Reset")
	}
	if snap.TimeLeft != 1500 {
		t.Errorf("TimeLeft = %v, want 1500", snap.TimeLeft)
	}
	if snap.FocusCount != 0 {
		t.Errorf("FocusCount = %v, want 0", snap.FocusCount)
	}
	if snap.LastEvent != nil {
		t.Error("LastEvent survived Reset")
	}
	if count != 2 {
		t.Errorf("events = %v, want 2 (Reset must not emit)", count)
	}
}

func TestUpdateSettings(t *testing.T) {
	intp := func(v int) *int { return &v }
	boolp := func(v bool) *bool { return &v }

	t.Run("paused countdown is recomputed", func(t *testing.T) {
		e, _ := newTestEngine(domain.DefaultTimerSettings())
		defer e.Stop()

		e.UpdateSettings(domain.SettingsPatch{FocusMinutes: intp(50)})
		if got := e.Snapshot().TimeLeft; got != 3000 {
			t.Errorf("TimeLeft = %v, want 3000", got)
		}
	})

	t.Run("flag toggles keep paused mid-interval progress", func(t *testing.T) {
		e, clock := newTestEngine(domain.DefaultTimerSettings())
		defer e.Stop()

		start(e)
		clock.Tick(time.Minute)
		e.Pause()

		e.UpdateSettings(domain.SettingsPatch{NotificationsEnabled: boolp(false)})
		if got := e.Snapshot().TimeLeft; got != 1440 {
			t.Errorf("TimeLeft = %v, want 1440 preserved across flag toggle", got)
		}

		// A duration change for the current mode still recomputes.
		e.UpdateSettings(domain.SettingsPatch{FocusMinutes: intp(50)})
		if got := e.Snapshot().TimeLeft; got != 3000 {
			t.Errorf("TimeLeft = %v, want 3000 after duration change", got)
		}
	})

	t.Run("running countdown is not truncated", func(t *testing.T) {
		e, clock := newTestEngine(domain.DefaultTimerSettings())
		defer e.Stop()

		start(e)
		clock.Tick(time.Minute)
		e.UpdateSettings(domain.SettingsPatch{FocusMinutes: intp(10)})

		if got := e.Snapshot().TimeLeft; got != 1440 {
			t.Errorf("TimeLeft = %v, want 1440 (untouched)", got)
		}
	})

	t.Run("disabling long break mid long break redirects silently", func(t *testing.T) {
		e, _ := newTestEngine(domain.DefaultTimerSettings())
		defer e.Stop()

		var count int
		e.Subscribe(func(domain.SessionEvent) { count++ })

		// Reach the long break.
		for i := 0; i < 7; i++ {
			e.Skip()
		}
		if got := e.Snapshot().Mode; got != domain.ModeLongBreak {
			t.Fatalf("Mode = %v, want long break", got)
		}
		emitted := count

		e.UpdateSettings(domain.SettingsPatch{EnableLongBreak: boolp(false)})

		snap := e.Snapshot()
		if snap.Mode != domain.ModeBreak {
			t.Errorf("Mode = %v, want break", snap.Mode)
		}
		if snap.TimeLeft != 300 {
			t.Errorf("TimeLeft = %v, want fresh 300", snap.TimeLeft)
		}
		if count != emitted {
			t.Error("corrective transition emitted an event")
		}
	})
}

func TestPersistRestore(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	start(e)
	clock.Tick(10 * time.Minute)
	e.Skip() // into break, running
	clock.Tick(time.Minute)

	snap := e.Persist()

	restored := Restore(e.Settings(), snap)
	restored.clock = clock.Now
	defer restored.Stop()

	got := restored.Snapshot()
	want := e.Snapshot()
	if got.Mode != want.Mode || got.Running != want.Running ||
		got.TimeLeft != want.TimeLeft || got.FocusCount != want.FocusCount {
		t.Errorf("restored = %+v, want %+v", got, want)
	}
}

func TestRestoreCatchesUpViaAdvance(t *testing.T) {
	e, clock := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	start(e)
	snap := e.Persist()

	// The process comes back long after the focus interval expired.
	clock.Tick(40 * time.Minute)

	restored := Restore(domain.DefaultTimerSettings(), snap)
	restored.clock = clock.Now
	defer restored.Stop()

	var events []domain.SessionEvent
	restored.Subscribe(func(ev domain.SessionEvent) { events = append(events, ev) })
	restored.Advance()

	if len(events) != 1 {
		t.Fatalf("len(events) = %v, want 1", len(events))
	}
	if events[0].Interrupted {
		t.Error("caught-up expiry marked interrupted")
	}
	if got := restored.Snapshot().Mode; got != domain.ModeBreak {
		t.Errorf("Mode = %v, want break", got)
	}
}

func TestRestoreClampsCorruptSnapshot(t *testing.T) {
	e := Restore(domain.DefaultTimerSettings(), domain.TimerSnapshot{
		Mode:             domain.ModeBreak,
		RemainingSeconds: 999999,
	})
	defer e.Stop()

	if got := e.Snapshot().TimeLeft; got != 300 {
		t.Errorf("TimeLeft = %v, want clamped to 300", got)
	}

	bad := Restore(domain.DefaultTimerSettings(), domain.TimerSnapshot{Mode: "bogus"})
	defer bad.Stop()
	snap := bad.Snapshot()
	if snap.Mode != domain.ModeFocus || snap.TimeLeft != 1500 {
		t.Errorf("bogus mode restored to %+v, want fresh focus engine", snap)
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	e, _ := newTestEngine(domain.DefaultTimerSettings())
	defer e.Stop()

	var order []string
	e.Subscribe(func(domain.SessionEvent) { order = append(order, "first") })
	e.Subscribe(func(domain.SessionEvent) { order = append(order, "second") })

	e.Skip()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}
