package timeutil

import (
	"fmt"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// FormatTime renders a timestamp as a fixed-format time of day, e.g. "09:00".
func FormatTime(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatDate renders the calendar date, e.g. "2024-05-17". The same format is
// used for the remote API's date-only query parameters.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// CombineDateWithTime builds a timestamp from day's calendar date and the
// clock value in hhmm ("HH:MM"). Day's own time component and sub-minute
// precision are discarded; the location is kept.
func CombineDateWithTime(day time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time of day %q: %w", hhmm, err)
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		day.Location(),
	), nil
}

// StartStopper is anything orderable by a start timestamp and an optional
// stop timestamp, where a missing stop means "still running".
type StartStopper interface {
	StartAt() time.Time
	StopAt() *time.Time
}

// CompareStartStop is a total order for slices.SortFunc: a running entry
// sorts after every stopped one regardless of its start; stopped entries
// order by start ascending.
func CompareStartStop(a, b StartStopper) int {
	aRunning := a.StopAt() == nil
	bRunning := b.StopAt() == nil
	switch {
	case aRunning && !bRunning:
		return 1
	case !aRunning && bRunning:
		return -1
	}
	return a.StartAt().Compare(b.StartAt())
}
