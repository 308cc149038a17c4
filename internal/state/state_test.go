package state

import (
	"testing"

	"togglr/internal/booking"
	"togglr/internal/domain"
)

func TestProjectsSnapshotIsolation(t *testing.T) {
	st := NewStore()
	st.SetProjects([]domain.Project{{ID: 1, Name: "Project A"}})

	snap := st.Projects()
	snap[0].Name = "mutated"

	if st.Projects()[0].Name != "Project A" {
		t.Fatal("mutating a snapshot must not touch the cache")
	}
}

func TestSetClientsCopiesInput(t *testing.T) {
	st := NewStore()
	in := []domain.Client{{ID: 1, Name: "Client A"}}
	st.SetClients(in)

	in[0].Name = "mutated"
	if st.Clients()[0].Name != "Client A" {
		t.Fatal("mutating the input slice must not touch the cache")
	}
}

func TestBookingOverwrite(t *testing.T) {
	st := NewStore()
	if d := st.Booking(); d.EntryID != nil {
		t.Fatalf("expected zero draft, got %+v", d)
	}

	id := int64(1234)
	st.SetBooking(booking.Draft{EntryID: &id, Description: "work"})

	d := st.Booking()
	if d.EntryID == nil || *d.EntryID != 1234 || d.Description != "work" {
		t.Fatalf("draft not stored: %+v", d)
	}
}

func TestUserRoundTrip(t *testing.T) {
	st := NewStore()
	if st.User() != nil {
		t.Fatal("expected nil user before fetch")
	}
	st.SetUser(&domain.User{ID: 5})
	if st.User().ID != 5 {
		t.Fatal("user not stored")
	}
}
