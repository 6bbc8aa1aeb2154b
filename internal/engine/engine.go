// Package engine implements the countdown state machine: a single automaton
// that alternates focus and break intervals, tracks remaining time against
// wall clock, and emits one SessionEvent per mode transition.
package engine

import (
	"sync"
	"time"

	"github.com/pomoday/pomoday/internal/domain"
)

// State is a read-only snapshot of the engine for display and serialization.
type State struct {
	Mode       domain.TimerMode
	Running    bool
	TimeLeft   int
	FocusCount int
	Settings   domain.TimerSettings
	LastEvent  *domain.SessionEvent
}

// Engine owns the countdown. Remaining time is always derived from a
// wall-clock reference point, never from a tick-incremented counter, so the
// countdown stays correct across process suspension.
type Engine struct {
	mu sync.Mutex

	settings domain.TimerSettings
	mode     domain.TimerMode

	running bool
	// remaining is the seconds left at segmentStart; while running, current
	// remaining time is this minus the whole seconds since segmentStart.
	remaining     int
	segmentStart  time.Time
	intervalStart time.Time

	focusCount int
	lastEvent  *domain.SessionEvent

	handlers []func(domain.SessionEvent)
	clock    func() time.Time
	stop     chan struct{}
}

// New creates an engine in focus mode, paused, with a full countdown.
func New(settings domain.TimerSettings) *Engine {
	settings = settings.Normalize()
	return &Engine{
		settings:  settings,
		mode:      domain.ModeFocus,
		remaining: settings.SecondsFor(domain.ModeFocus),
		clock:     time.Now,
	}
}

// Restore rebuilds an engine from a persisted snapshot. The ticker is not
// restarted; call Advance once to apply any transition that became due while
// the process was gone, then Start to resume ticking.
func Restore(settings domain.TimerSettings, snap domain.TimerSnapshot) *Engine {
	e := New(settings)
	switch snap.Mode {
	case domain.ModeFocus, domain.ModeBreak, domain.ModeLongBreak:
		e.mode = snap.Mode
	default:
		return e
	}
	e.running = snap.Running
	e.remaining = snap.RemainingSeconds
	if e.remaining < 0 {
		e.remaining = 0
	}
	if max := e.settings.SecondsFor(e.mode); e.remaining > max {
		e.remaining = max
	}
	e.segmentStart = snap.SegmentStartedAt
	e.intervalStart = snap.IntervalStartedAt
	e.focusCount = snap.FocusCount
	e.lastEvent = snap.LastEvent
	return e
}

// Subscribe registers a handler invoked synchronously, in registration
// order, for every emitted SessionEvent.
func (e *Engine) Subscribe(fn func(domain.SessionEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, fn)
}

// Start begins (or resumes) the countdown. No-op if already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if !e.running {
		now := e.clock()
		e.running = true
		e.segmentStart = now
		// A countdown still at its full duration is a fresh interval.
		if e.intervalStart.IsZero() || e.remaining == e.settings.SecondsFor(e.mode) {
			e.intervalStart = now
		}
	}
	e.ensureTickerLocked()
	e.mu.Unlock()
}

// Pause halts the countdown without altering remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.remaining = e.timeLeftLocked(e.clock())
	e.running = false
	e.stopTickerLocked()
}

// Reset is a hard abort: back to a full, paused focus countdown with the
// focus counter cleared. No SessionEvent is emitted for whatever was in
// progress.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.stopTickerLocked()
	e.mode = domain.ModeFocus
	e.remaining = e.settings.SecondsFor(domain.ModeFocus)
	e.focusCount = 0
	e.lastEvent = nil
	e.intervalStart = time.Time{}
	e.segmentStart = time.Time{}
}

// Skip forces an immediate mode transition, crediting only the time actually
// elapsed. The emitted event is marked interrupted unless the skip happens
// to land exactly at expiry.
func (e *Engine) Skip() {
	e.mu.Lock()
	ev := e.transitionLocked(e.clock())
	handlers := append([]func(domain.SessionEvent){}, e.handlers...)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Advance applies a transition if the countdown has expired. The internal
// ticker calls this once per second; one-shot callers use it after Restore
// to catch up with wall clock.
func (e *Engine) Advance() {
	e.mu.Lock()
	now := e.clock()
	if !e.running || e.timeLeftLocked(now) > 0 {
		e.mu.Unlock()
		return
	}
	ev := e.transitionLocked(now)
	handlers := append([]func(domain.SessionEvent){}, e.handlers...)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// UpdateSettings merges a sanitized patch. While paused, the visible
// remaining time is recomputed only when the current mode's duration actually
// changed, so flag toggles keep mid-interval progress; a running countdown is
// never truncated. Disabling long breaks while in long-break mode redirects
// to a fresh break countdown without emitting an event.
func (e *Engine) UpdateSettings(patch domain.SettingsPatch) domain.TimerSettings {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.settings
	e.settings = e.settings.Merge(patch)

	if !e.running && prev.SecondsFor(e.mode) != e.settings.SecondsFor(e.mode) {
		e.remaining = e.settings.SecondsFor(e.mode)
	}

	// Corrective transition, not a countdown transition: no event.
	if e.mode == domain.ModeLongBreak && !e.settings.EnableLongBreak {
		e.mode = domain.ModeBreak
		e.remaining = e.settings.SecondsFor(domain.ModeBreak)
		if e.running {
			e.segmentStart = e.clock()
		}
	}

	return e.settings
}

// Settings returns the current settings.
func (e *Engine) Settings() domain.TimerSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Snapshot returns the current engine state with remaining time computed
// from wall clock.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Mode:       e.mode,
		Running:    e.running,
		TimeLeft:   e.timeLeftLocked(e.clock()),
		FocusCount: e.focusCount,
		Settings:   e.settings,
		LastEvent:  e.lastEvent,
	}
}

// Persist returns the serializable engine state.
func (e *Engine) Persist() domain.TimerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TimerSnapshot{
		Mode:              e.mode,
		Running:           e.running,
		RemainingSeconds:  e.remaining,
		SegmentStartedAt:  e.segmentStart,
		IntervalStartedAt: e.intervalStart,
		FocusCount:        e.focusCount,
		LastEvent:         e.lastEvent,
	}
}

// Stop tears down the ticker without touching countdown state. Used on
// shutdown; the persisted snapshot keeps the countdown consistent.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickerLocked()
}

func (e *Engine) timeLeftLocked(now time.Time) int {
	if !e.running {
		return e.remaining
	}
	left := e.remaining - int(now.Sub(e.segmentStart)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// transitionLocked closes the current interval, emits its event, and opens
// the next mode's countdown. The caller fires the returned event outside the
// lock.
func (e *Engine) transitionLocked(now time.Time) domain.SessionEvent {
	scheduled := e.settings.SecondsFor(e.mode)
	elapsed := scheduled - e.timeLeftLocked(now)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > scheduled {
		elapsed = scheduled
	}

	startedAt := e.intervalStart
	if startedAt.IsZero() {
		startedAt = now.Add(-time.Duration(elapsed) * time.Second)
	}

	ev := domain.SessionEvent{
		Mode:             e.mode,
		StartedAt:        startedAt,
		EndedAt:          now,
		ScheduledSeconds: scheduled,
		ElapsedSeconds:   elapsed,
		Interrupted:      elapsed < scheduled,
	}
	e.lastEvent = &ev

	if e.mode == domain.ModeFocus {
		e.focusCount++
	}
	e.mode = e.nextModeLocked()
	e.remaining = e.settings.SecondsFor(e.mode)
	e.segmentStart = now
	e.intervalStart = now

	return ev
}

func (e *Engine) nextModeLocked() domain.TimerMode {
	if e.mode.IsBreak() {
		return domain.ModeFocus
	}
	if e.settings.EnableLongBreak && e.focusCount%e.settings.LongBreakInterval == 0 {
		return domain.ModeLongBreak
	}
	return domain.ModeBreak
}

// ensureTickerLocked spawns the ticking goroutine if none is active.
func (e *Engine) ensureTickerLocked() {
	if e.stop != nil {
		return
	}
	stop := make(chan struct{})
	e.stop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.Advance()
			}
		}
	}()
}

func (e *Engine) stopTickerLocked() {
	if e.stop == nil {
		return
	}
	close(e.stop)
	e.stop = nil
}
