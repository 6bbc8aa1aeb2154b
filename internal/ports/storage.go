// Package ports defines the interfaces between the core (engine, scheduler)
// and external infrastructure, following hexagonal architecture principles.
package ports

import "github.com/pomoday/pomoday/internal/domain"

// StateStore is the persistence collaborator: an opaque key-value store of
// JSON documents, one per state kind. Load methods return the zero value
// (nil pointer, nil map, empty string) when a document is absent or
// unreadable — callers fall back to defaults; persistence failures are never
// fatal to the running timer.
type StateStore interface {
	// LoadSettings returns the persisted timer settings, or nil if absent.
	LoadSettings() (*domain.TimerSettings, error)

	// SaveSettings persists the timer settings.
	SaveSettings(settings domain.TimerSettings) error

	// LoadSchedule returns the persisted schedule state, or nil if absent.
	LoadSchedule() (domain.ScheduleState, error)

	// SaveSchedule persists the schedule state.
	SaveSchedule(state domain.ScheduleState) error

	// LoadSelectedDay returns the persisted selected day key, or "".
	LoadSelectedDay() (string, error)

	// SaveSelectedDay persists the selected day key.
	SaveSelectedDay(key string) error

	// LoadTimerSnapshot returns the persisted engine state, or nil if absent.
	LoadTimerSnapshot() (*domain.TimerSnapshot, error)

	// SaveTimerSnapshot persists the engine state.
	SaveTimerSnapshot(snap domain.TimerSnapshot) error

	// Close closes the underlying store.
	Close() error
}
