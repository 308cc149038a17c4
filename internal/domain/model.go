package domain

import "time"

// Client is a Toggl client (the billing kind, not the HTTP kind).
type Client struct {
	ID   int64
	Name string
}

// Workspace is referenced only to scope per-workspace API paths.
type Workspace struct {
	ID int64
}

// Project references at most one client. Client is nil when the project's
// client id did not match anything in the fetched client collection.
type Project struct {
	ID        int64
	Name      string
	Color     string
	Client    *Client
	Workspace Workspace
}

// Label renders the project the way selectors display it: "Name | Client",
// or just the name when no client resolved.
func (p Project) Label() string {
	if p.Client == nil {
		return p.Name
	}
	return p.Name + " | " + p.Client.Name
}

// TimeEntry is a single tracked interval. Stop is nil while the entry is
// still running; Duration mirrors the remote convention where a negative
// value also denotes a running entry.
type TimeEntry struct {
	ID          int64
	Description string
	Project     *Project
	Start       time.Time
	Stop        *time.Time
	Duration    int64
}

// Running reports whether the entry has not been stopped yet.
func (e TimeEntry) Running() bool {
	return e.Stop == nil
}

// StartAt and StopAt satisfy timeutil.StartStopper.
func (e TimeEntry) StartAt() time.Time { return e.Start }
func (e TimeEntry) StopAt() *time.Time { return e.Stop }

type User struct {
	ID                 int64
	Email              string
	DefaultWorkspaceID int64
}
