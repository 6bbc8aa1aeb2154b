package domain

// TimerMode represents the type of countdown interval.
type TimerMode string

const (
	ModeFocus     TimerMode = "focus"
	ModeBreak     TimerMode = "break"
	ModeLongBreak TimerMode = "long_break"
)

// IsBreak returns true for either break variant.
func (m TimerMode) IsBreak() bool {
	return m == ModeBreak || m == ModeLongBreak
}

// Label returns a human-readable label for the mode.
func (m TimerMode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeBreak:
		return "Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}
