package state

import (
	"sync"

	"togglr/internal/booking"
	"togglr/internal/domain"
)

// Store is the single in-memory home for everything fetched from the remote
// service plus the in-progress booking draft. It is constructed once at the
// application root and passed explicitly to whoever needs it. Nothing here is
// invalidated automatically; staleness is the caller's problem, re-fetch
// before freshness-sensitive reads.
type Store struct {
	mu       sync.RWMutex
	user     *domain.User
	clients  []domain.Client
	projects []domain.Project
	booking  booking.Draft
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Clients returns a snapshot copy; mutating it does not touch the cache.
func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *Store) SetClients(clients []domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make([]domain.Client, len(clients))
	copy(s.clients, clients)
}

// Projects returns a snapshot copy of the cached collection. The collection
// is stored already sorted by name; callers observe it in that order.
func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s *Store) SetProjects(projects []domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make([]domain.Project, len(projects))
	copy(s.projects, projects)
}

func (s *Store) Booking() booking.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booking
}

// SetBooking overwrites the draft wholesale.
func (s *Store) SetBooking(d booking.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booking = d
}
