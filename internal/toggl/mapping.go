package toggl

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"togglr/internal/domain"
)

// Mapping from wire records to the domain model. All functions here are
// pure: references are resolved once, against the collections passed in, and
// a missing match leaves the reference nil rather than failing.

func mapClient(raw rawClient) domain.Client {
	return domain.Client{ID: raw.ID, Name: raw.Name}
}

func mapClients(raws []rawClient) []domain.Client {
	out := make([]domain.Client, 0, len(raws))
	for _, r := range raws {
		out = append(out, mapClient(r))
	}
	return out
}

func mapProject(raw rawProject, clients []domain.Client) domain.Project {
	p := domain.Project{
		ID:        raw.ID,
		Name:      raw.Name,
		Color:     raw.Color,
		Workspace: domain.Workspace{ID: raw.WorkspaceID},
	}
	if raw.ClientID != nil {
		for i := range clients {
			if clients[i].ID == *raw.ClientID {
				p.Client = &clients[i]
				break
			}
		}
	}
	return p
}

// mapProjects maps the full collection and sorts it ascending by name under
// locale-aware comparison; the cached collection is always observed in that
// order.
func mapProjects(raws []rawProject, clients []domain.Client) []domain.Project {
	out := make([]domain.Project, 0, len(raws))
	for _, r := range raws {
		out = append(out, mapProject(r, clients))
	}
	coll := collate.New(language.Und)
	slices.SortFunc(out, func(a, b domain.Project) int {
		return coll.CompareString(a.Name, b.Name)
	})
	return out
}

func mapTimeEntry(raw rawTimeEntry, projects []domain.Project) domain.TimeEntry {
	e := domain.TimeEntry{
		ID:          raw.ID,
		Description: raw.Description,
		Start:       raw.Start,
		Duration:    raw.Duration,
	}
	if raw.Stop != nil {
		stop := *raw.Stop
		e.Stop = &stop
	}
	if raw.ProjectID != nil {
		for i := range projects {
			if projects[i].ID == *raw.ProjectID {
				e.Project = &projects[i]
				break
			}
		}
	}
	return e
}

func mapUser(raw rawUser) domain.User {
	return domain.User{
		ID:                 raw.ID,
		Email:              raw.Email,
		DefaultWorkspaceID: raw.DefaultWorkspaceID,
	}
}
