package domain

import "time"

// SessionEvent is the immutable record of one completed or skipped interval.
// It is the unit of communication from the countdown engine to the scheduler:
// emitted exactly once per mode transition (natural expiry or explicit skip)
// and folded into the active task's ledger.
type SessionEvent struct {
	Mode             TimerMode `json:"mode"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
	ScheduledSeconds int       `json:"scheduled_seconds"`
	ElapsedSeconds   int       `json:"elapsed_seconds"`
	Interrupted      bool      `json:"interrupted"`
}

// IsFocus returns true if the event describes a focus interval.
func (e SessionEvent) IsFocus() bool {
	return e.Mode == ModeFocus
}

// TimerSnapshot is the serializable state of the countdown engine. It lets a
// one-shot CLI invocation rehydrate the countdown and derive remaining time
// from wall clock, the same way the engine survives process suspension.
type TimerSnapshot struct {
	Mode              TimerMode     `json:"mode"`
	Running           bool          `json:"running"`
	RemainingSeconds  int           `json:"remaining_seconds"`
	SegmentStartedAt  time.Time     `json:"segment_started_at"`
	IntervalStartedAt time.Time     `json:"interval_started_at"`
	FocusCount        int           `json:"focus_count"`
	LastEvent         *SessionEvent `json:"last_event,omitempty"`
}
