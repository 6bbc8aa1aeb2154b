package domain

import "time"

// Day keys are display strings like "Monday, 02.01.2006". The fixed
// DD.MM.YYYY suffix makes the key re-parseable when a day is referenced
// before it exists (e.g. picked from a list of historical keys).
const (
	dayKeyLayout  = "Monday, 02.01.2006"
	dayDateLayout = "02.01.2006"
	isoDateLayout = "2006-01-02"
)

// DayKeyFor derives the day key for the calendar day containing t.
func DayKeyFor(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ISODateFor returns the sortable ISO date for the day containing t.
func ISODateFor(t time.Time) string {
	return t.Format(isoDateLayout)
}

// ParseDayKey reconstructs the date from a day key's DD.MM.YYYY suffix.
// Returns false when the key carries no parseable date.
func ParseDayKey(key string) (time.Time, bool) {
	if len(key) < len(dayDateLayout) {
		return time.Time{}, false
	}
	suffix := key[len(key)-len(dayDateLayout):]
	date, err := time.ParseInLocation(dayDateLayout, suffix, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
