package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"togglr/internal/domain"
	"togglr/internal/state"
	"togglr/internal/timeutil"
)

const (
	defaultBaseURL = "https://api.track.toggl.com"
	apiPrefix      = "/api/v9"

	// The Toggl API authenticates with basic auth where the username is
	// the API token and the password is this literal.
	basicAuthPassword = "api_token"
)

// Client is the one shared connection to the Toggl Track API. It is
// constructed once at the application root and passed explicitly; every
// fetch writes through to the injected state store, which is the cache all
// later mapping resolves against.
type Client struct {
	token       string
	baseURL     string
	workspaceID int64
	httpClient  *http.Client
	store       *state.Store
	devDelay    time.Duration
	logger      *slog.Logger
}

// New builds a client. devDelay is an artificial latency applied before
// selected fetches to exercise loading indicators; it is zero outside
// development mode.
func New(token, baseURL string, workspaceID int64, st *state.Store, devDelay time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:       token,
		baseURL:     strings.TrimRight(baseURL, "/"),
		workspaceID: workspaceID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:    st,
		devDelay: devDelay,
		logger:   logger,
	}
}

// SetToken rotates the credential on the existing connection.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetWorkspace pins the workspace used for entry updates and stops, usually
// the user's default workspace once it is known.
func (c *Client) SetWorkspace(id int64) {
	c.workspaceID = id
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.SetBasicAuth(c.token, basicAuthPassword)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("toggl API request", "method", method, "path", path)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("toggl API response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(requestStart))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return respBody, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// simulateLatency sleeps for the configured development delay, so loading
// states stay visible against a fast network.
func (c *Client) simulateLatency(ctx context.Context) {
	if c.devDelay <= 0 {
		return
	}
	select {
	case <-time.After(c.devDelay):
	case <-ctx.Done():
	}
}

// FetchUser loads the current user, caches it and returns it.
func (c *Client) FetchUser(ctx context.Context) (*domain.User, error) {
	c.simulateLatency(ctx)

	data, err := c.doRequest(ctx, http.MethodGet, "/me", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var raw rawUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	user := mapUser(raw)
	c.store.SetUser(&user)
	return &user, nil
}

// FetchClients loads the workspace's clients and overwrites the cached
// collection. An absent or null remote payload is an empty list, not an
// error.
func (c *Client) FetchClients(ctx context.Context, workspaceID int64) ([]domain.Client, error) {
	data, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/workspaces/%d/clients", workspaceID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting clients: %w", err)
	}

	var raws []rawClient
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing clients response: %w", err)
	}

	clients := mapClients(raws)
	c.store.SetClients(clients)
	return clients, nil
}

// FetchProjects loads the workspace's projects, resolves each against the
// currently cached clients (fetch clients first, or accept unresolved
// references) and caches the name-sorted collection.
//
// The return value is always an empty list; callers read the freshly
// updated store to obtain the projects.
func (c *Client) FetchProjects(ctx context.Context, workspaceID int64) ([]domain.Project, error) {
	data, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/workspaces/%d/projects", workspaceID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting projects: %w", err)
	}

	var raws []rawProject
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing projects response: %w", err)
	}

	c.store.SetProjects(mapProjects(raws, c.store.Clients()))
	return []domain.Project{}, nil
}

// FetchActiveTimeEntry loads the currently running entry, if any. When one
// exists, the booking draft's day, description, start, entry id and project
// id are overwritten wholesale; other draft fields are left as-is. No
// running entry returns (nil, nil) and leaves the draft untouched.
func (c *Client) FetchActiveTimeEntry(ctx context.Context) (*domain.TimeEntry, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/me/time_entries/current", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting active entry: %w", err)
	}

	var raw *rawTimeEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing active entry response: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	entry := mapTimeEntry(*raw, c.store.Projects())

	draft := c.store.Booking()
	draft.Day = entry.Start
	draft.Description = entry.Description
	draft.TimeStart = timeutil.FormatTime(entry.Start)
	draft.EntryID = &entry.ID
	draft.ProjectID = raw.ProjectID
	draft.StartEdited = false
	c.store.SetBooking(draft)

	return &entry, nil
}

// FetchTimeEntriesOfDay loads the entries starting within [day 00:00,
// day+1 00:00), issued as date-only query bounds the way the API expects.
// Entries come back sorted by start ascending with a running entry last.
func (c *Client) FetchTimeEntriesOfDay(ctx context.Context, day time.Time) ([]domain.TimeEntry, error) {
	c.simulateLatency(ctx)

	query := url.Values{}
	query.Set("start_date", timeutil.FormatDate(day))
	query.Set("end_date", timeutil.FormatDate(day.AddDate(0, 0, 1)))

	data, err := c.doRequest(ctx, http.MethodGet, "/me/time_entries", query, nil)
	if err != nil {
		return nil, fmt.Errorf("getting entries of day: %w", err)
	}

	var raws []rawTimeEntry
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing entries response: %w", err)
	}

	projects := c.store.Projects()
	entries := make([]domain.TimeEntry, 0, len(raws))
	for _, r := range raws {
		entries = append(entries, mapTimeEntry(r, projects))
	}
	slices.SortFunc(entries, func(a, b domain.TimeEntry) int {
		return timeutil.CompareStartStop(a, b)
	})
	return entries, nil
}

// UpdateTimeEntry PUTs the full entry payload. Any failure, transport or
// HTTP, is swallowed: the result is nil and the caller must treat the remote
// state as unchanged.
func (c *Client) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	body := updateEntryBody{
		Description: entry.Description,
		Start:       entry.Start.Format(time.RFC3339),
		WorkspaceID: c.workspaceID,
	}
	if entry.Stop != nil {
		body.Stop = entry.Stop.Format(time.RFC3339)
	}
	if entry.Project != nil {
		pid := entry.Project.ID
		body.ProjectID = &pid
	}

	path := fmt.Sprintf("/workspaces/%d/time_entries/%d", c.workspaceID, entry.ID)
	data, err := c.doRequest(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		c.logger.Warn("update swallowed", "entry", entry.ID, "error", err)
		return nil, nil
	}

	var raw rawTimeEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warn("update response unreadable", "entry", entry.ID, "error", err)
		return nil, nil
	}

	updated := mapTimeEntry(raw, c.store.Projects())
	return &updated, nil
}

// StopTimeEntry closes a running entry at the remote's current time and
// returns the resulting closed entry.
func (c *Client) StopTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	path := fmt.Sprintf("/workspaces/%d/time_entries/%d/stop", c.workspaceID, id)
	data, err := c.doRequest(ctx, http.MethodPatch, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("stopping entry %d: %w", id, err)
	}

	var raw rawTimeEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing stop response: %w", err)
	}

	stopped := mapTimeEntry(raw, c.store.Projects())
	return &stopped, nil
}
