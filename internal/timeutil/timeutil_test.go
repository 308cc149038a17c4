package timeutil

import (
	"slices"
	"testing"
	"time"
)

type span struct {
	start time.Time
	stop  *time.Time
}

func (s span) StartAt() time.Time { return s.start }
func (s span) StopAt() *time.Time { return s.stop }

func stopped(start time.Time, d time.Duration) span {
	stop := start.Add(d)
	return span{start: start, stop: &stop}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 5, 17, 9, 5, 33, 0, time.UTC)
	if got := FormatTime(ts); got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 5, 17, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-05-17" {
		t.Fatalf("expected 2024-05-17, got %s", got)
	}
}

func TestCombineDateWithTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	// Day's own clock value must be discarded.
	day := time.Date(2024, 5, 17, 22, 41, 12, 999, loc)

	got, err := CombineDateWithTime(day, "09:00")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 5, 17, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.Location() != loc {
		t.Fatalf("expected location %v, got %v", loc, got.Location())
	}
}

func TestCombineDateWithTimeInvalid(t *testing.T) {
	for _, bad := range []string{"", "9am", "25:00", "09:60"} {
		if _, err := CombineDateWithTime(time.Now(), bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

// FormatTime(CombineDateWithTime(day, s)) must recover s for every valid
// clock string.
func TestCombineFormatRoundTrip(t *testing.T) {
	day := time.Date(2024, 5, 17, 13, 37, 0, 0, time.UTC)
	for _, s := range []string{"00:00", "09:00", "12:34", "23:59"} {
		combined, err := CombineDateWithTime(day, s)
		if err != nil {
			t.Fatalf("combine %q: %v", s, err)
		}
		if got := FormatTime(combined); got != s {
			t.Fatalf("round trip of %q gave %q", s, got)
		}
	}
}

func TestCompareStartStopRunningSortsLast(t *testing.T) {
	base := time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC)
	running := span{start: base} // earliest start, but still running

	entries := []span{
		stopped(base.Add(2*time.Hour), time.Hour),
		running,
		stopped(base.Add(30*time.Minute), time.Hour),
		stopped(base.Add(4*time.Hour), time.Hour),
	}
	slices.SortFunc(entries, func(a, b span) int {
		return CompareStartStop(a, b)
	})

	if entries[len(entries)-1].stop != nil {
		t.Fatal("running entry must sort last")
	}
	for i := 0; i < len(entries)-2; i++ {
		if entries[i].start.After(entries[i+1].start) {
			t.Fatalf("stopped entries out of order at %d", i)
		}
	}
}

func TestCompareStartStopBothStopped(t *testing.T) {
	base := time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC)
	a := stopped(base, time.Hour)
	b := stopped(base.Add(time.Hour), time.Hour)

	if CompareStartStop(a, b) >= 0 {
		t.Fatal("earlier start must sort first")
	}
	if CompareStartStop(b, a) <= 0 {
		t.Fatal("later start must sort last")
	}
	if CompareStartStop(a, a) != 0 {
		t.Fatal("equal spans must compare equal")
	}
}
