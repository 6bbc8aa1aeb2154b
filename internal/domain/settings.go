package domain

import "time"

// TimerSettings holds the user-configurable countdown durations and flags.
// All mutations go through Merge so invalid input never lands in the struct.
type TimerSettings struct {
	FocusMinutes         int  `json:"focus_minutes"`
	BreakMinutes         int  `json:"break_minutes"`
	LongBreakMinutes     int  `json:"long_break_minutes"`
	EnableLongBreak      bool `json:"enable_long_break"`
	LongBreakInterval    int  `json:"long_break_interval"`
	SoundEnabled         bool `json:"sound_enabled"`
	NotificationsEnabled bool `json:"notifications_enabled"`
}

// DefaultTimerSettings returns the classic 25/5/15 pomodoro configuration.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusMinutes:         25,
		BreakMinutes:         5,
		LongBreakMinutes:     15,
		EnableLongBreak:      true,
		LongBreakInterval:    4,
		SoundEnabled:         true,
		NotificationsEnabled: true,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left
// untouched; non-positive durations are rejected in favor of the prior value.
type SettingsPatch struct {
	FocusMinutes         *int
	BreakMinutes         *int
	LongBreakMinutes     *int
	EnableLongBreak      *bool
	LongBreakInterval    *int
	SoundEnabled         *bool
	NotificationsEnabled *bool
}

// Merge applies a sanitized patch and returns the resulting settings.
func (s TimerSettings) Merge(p SettingsPatch) TimerSettings {
	if p.FocusMinutes != nil && *p.FocusMinutes >= 1 {
		s.FocusMinutes = *p.FocusMinutes
	}
	if p.BreakMinutes != nil && *p.BreakMinutes >= 1 {
		s.BreakMinutes = *p.BreakMinutes
	}
	if p.LongBreakMinutes != nil && *p.LongBreakMinutes >= 1 {
		s.LongBreakMinutes = *p.LongBreakMinutes
	}
	if p.LongBreakInterval != nil && *p.LongBreakInterval >= 1 {
		s.LongBreakInterval = *p.LongBreakInterval
	}
	if p.EnableLongBreak != nil {
		s.EnableLongBreak = *p.EnableLongBreak
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	return s
}

// Normalize repairs settings loaded from storage: any non-positive duration
// falls back to its default.
func (s TimerSettings) Normalize() TimerSettings {
	def := DefaultTimerSettings()
	if s.FocusMinutes < 1 {
		s.FocusMinutes = def.FocusMinutes
	}
	if s.BreakMinutes < 1 {
		s.BreakMinutes = def.BreakMinutes
	}
	if s.LongBreakMinutes < 1 {
		s.LongBreakMinutes = def.LongBreakMinutes
	}
	if s.LongBreakInterval < 1 {
		s.LongBreakInterval = def.LongBreakInterval
	}
	return s
}

// DurationFor returns the configured duration for a mode.
func (s TimerSettings) DurationFor(mode TimerMode) time.Duration {
	switch mode {
	case ModeBreak:
		return time.Duration(s.BreakMinutes) * time.Minute
	case ModeLongBreak:
		return time.Duration(s.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(s.FocusMinutes) * time.Minute
	}
}

// SecondsFor returns the configured duration for a mode in whole seconds.
func (s TimerSettings) SecondsFor(mode TimerMode) int {
	return int(s.DurationFor(mode) / time.Second)
}
