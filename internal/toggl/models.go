package toggl

import "time"

// Wire models mirror the JSON of the Toggl Track API v9. Stop and the
// reference ids are pointers: a running entry simply has no stop in the
// payload, and that absence must survive into the domain model.

type rawClient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawProject struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	ClientID    *int64 `json:"client_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
}

type rawTimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	WorkspaceID *int64     `json:"workspace_id"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
}

type rawUser struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	DefaultWorkspaceID int64  `json:"default_workspace_id"`
}

// updateEntryBody is the payload PUT to the entry endpoint. The entry id
// rides in the path, and duration is recomputed by the service from start
// and stop, so neither is sent.
type updateEntryBody struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	Stop        string `json:"stop,omitempty"`
	ProjectID   *int64 `json:"project_id,omitempty"`
	WorkspaceID int64  `json:"workspace_id"`
}
