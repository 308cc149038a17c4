// Package booking holds the in-progress edit of a time entry and decides,
// on commit, whether the edit becomes a remote "stop" or a remote "update".
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"togglr/internal/domain"
	"togglr/internal/timeutil"
)

// ErrStopBeforeStart flags a stop time strictly earlier than the start time
// on the same day. The stop field is rejected at the input boundary; no
// remote call may be issued while a draft carries an invalid stop.
var ErrStopBeforeStart = errors.New("stop time is before start time")

// Draft is the transient, UI-facing edit state for a new or existing
// (possibly still running) entry. Times are clock strings ("HH:MM") anchored
// to Day; EntryID and ProjectID are nil until an entry or project is chosen.
type Draft struct {
	Day         time.Time
	ProjectID   *int64
	Description string
	EntryID     *int64
	TimeStart   string
	TimeStop    string

	// StartEdited is set once the user touches the start field, so a
	// running entry with a locally edited start can be told apart from one
	// exactly as the remote returned it.
	StartEdited bool
}

type Phase int

const (
	// Empty: no active or draft entry.
	Empty Phase = iota
	// Running: an active entry loaded from remote, untouched locally.
	Running
	// EditedRunning: a running entry whose start was edited, stop unset.
	EditedRunning
	// Completable: entry id, start and stop all present; commit updates
	// both bounds.
	Completable
)

// PhaseOf derives the reconciliation phase from the draft's fields.
func PhaseOf(d Draft) Phase {
	switch {
	case d.EntryID == nil || d.TimeStart == "":
		return Empty
	case d.TimeStop != "":
		return Completable
	case d.StartEdited:
		return EditedRunning
	default:
		return Running
	}
}

// Stoppable reports whether committing the draft closes the entry at the
// remote's current time: an entry id and a start are present and no stop has
// been set. Both Running and EditedRunning qualify; a locally edited start is
// NOT sent along with the stop.
func (d Draft) Stoppable() bool {
	p := PhaseOf(d)
	return p == Running || p == EditedRunning
}

// ValidateStop gates the stop field: a stop strictly earlier than the start
// on the same day is rejected. An unset stop is always valid.
func ValidateStop(timeStart, timeStop string) error {
	if timeStop == "" {
		return nil
	}
	start, err := timeutil.CombineDateWithTime(time.Time{}, timeStart)
	if err != nil {
		return err
	}
	stop, err := timeutil.CombineDateWithTime(time.Time{}, timeStop)
	if err != nil {
		return err
	}
	if stop.Before(start) {
		return ErrStopBeforeStart
	}
	return nil
}

// API is the slice of the time-tracking client that commits need.
type API interface {
	StopTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
}

// Commit reconciles the draft against the remote: a stoppable draft issues
// exactly one stop call, a completable draft exactly one update with both
// bounds combined from the draft's day and clock strings. Any other phase is
// a no-op. Returns the entry as the remote answered it, nil if nothing was
// committed or the update was swallowed.
func Commit(ctx context.Context, api API, d Draft) (*domain.TimeEntry, error) {
	if err := ValidateStop(d.TimeStart, d.TimeStop); err != nil {
		return nil, err
	}

	if d.Stoppable() {
		return api.StopTimeEntry(ctx, *d.EntryID)
	}

	if PhaseOf(d) != Completable {
		return nil, nil
	}

	start, err := timeutil.CombineDateWithTime(d.Day, d.TimeStart)
	if err != nil {
		return nil, fmt.Errorf("combining start: %w", err)
	}
	stop, err := timeutil.CombineDateWithTime(d.Day, d.TimeStop)
	if err != nil {
		return nil, fmt.Errorf("combining stop: %w", err)
	}

	entry := domain.TimeEntry{
		ID:          *d.EntryID,
		Description: d.Description,
		Start:       start,
		Stop:        &stop,
	}
	if d.ProjectID != nil {
		entry.Project = &domain.Project{ID: *d.ProjectID}
	}
	return api.UpdateTimeEntry(ctx, entry)
}
