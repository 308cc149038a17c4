package toggl

import (
	"testing"
	"time"

	"togglr/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestMapClient(t *testing.T) {
	c := mapClient(rawClient{ID: 7, Name: "Client A"})
	if c.ID != 7 || c.Name != "Client A" {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestMapProjectResolvesClient(t *testing.T) {
	clients := []domain.Client{{ID: 1, Name: "Client A"}, {ID: 2, Name: "Client B"}}

	p := mapProject(rawProject{ID: 10, WorkspaceID: 99, ClientID: ptr(int64(2)), Name: "Site", Color: "#abc"}, clients)
	if p.Client == nil || p.Client.Name != "Client B" {
		t.Fatalf("expected Client B, got %+v", p.Client)
	}
	if p.Workspace.ID != 99 {
		t.Fatalf("expected workspace 99, got %d", p.Workspace.ID)
	}
	if p.Name != "Site" || p.Color != "#abc" || p.ID != 10 {
		t.Fatalf("unexpected project: %+v", p)
	}
}

// An unknown client id is not an error; the reference stays nil.
func TestMapProjectUnresolvedClient(t *testing.T) {
	p := mapProject(rawProject{ID: 10, ClientID: ptr(int64(42)), Name: "Site"}, nil)
	if p.Client != nil {
		t.Fatalf("expected nil client, got %+v", p.Client)
	}

	p = mapProject(rawProject{ID: 11, Name: "Internal"}, []domain.Client{{ID: 1}})
	if p.Client != nil {
		t.Fatalf("expected nil client for absent id, got %+v", p.Client)
	}
}

// The mapped collection is sorted ascending by name under locale-aware
// comparison, whatever order the remote returned.
func TestMapProjectsSortedByName(t *testing.T) {
	raws := []rawProject{
		{ID: 1, Name: "Zebra"},
		{ID: 2, Name: "mango"},
		{ID: 3, Name: "Émile"},
		{ID: 4, Name: "apple"},
	}

	got := mapProjects(raws, nil)
	want := []string{"apple", "Émile", "mango", "Zebra"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestMapTimeEntryStopAbsence(t *testing.T) {
	start := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)

	// Running: no stop in the wire record, negative duration.
	e := mapTimeEntry(rawTimeEntry{ID: 1, Start: start, Duration: -1}, nil)
	if e.Stop != nil {
		t.Fatalf("running entry must have nil stop, got %v", e.Stop)
	}
	if !e.Running() {
		t.Fatal("entry without stop must report running")
	}

	// Stopped: stop present.
	stop := start.Add(time.Hour)
	e = mapTimeEntry(rawTimeEntry{ID: 2, Start: start, Stop: &stop, Duration: 3600}, nil)
	if e.Stop == nil || !e.Stop.Equal(stop) {
		t.Fatalf("expected stop %v, got %v", stop, e.Stop)
	}
	if e.Running() {
		t.Fatal("entry with stop must not report running")
	}
}

func TestMapTimeEntryResolvesProject(t *testing.T) {
	projects := []domain.Project{{ID: 2, Name: "Project B"}}
	start := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)

	e := mapTimeEntry(rawTimeEntry{ID: 1, Description: "work", ProjectID: ptr(int64(2)), Start: start}, projects)
	if e.Project == nil || e.Project.Name != "Project B" {
		t.Fatalf("expected Project B, got %+v", e.Project)
	}
	if e.Description != "work" {
		t.Fatalf("description not copied: %q", e.Description)
	}

	// Unknown project id stays unresolved, silently.
	e = mapTimeEntry(rawTimeEntry{ID: 2, ProjectID: ptr(int64(99)), Start: start}, projects)
	if e.Project != nil {
		t.Fatalf("expected nil project, got %+v", e.Project)
	}
}

func TestMapUser(t *testing.T) {
	u := mapUser(rawUser{ID: 5, Email: "me@example.com", DefaultWorkspaceID: 77})
	if u.ID != 5 || u.Email != "me@example.com" || u.DefaultWorkspaceID != 77 {
		t.Fatalf("unexpected user: %+v", u)
	}
}
