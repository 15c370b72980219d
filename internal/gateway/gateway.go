// Package gateway is the REST client for the hosted StoryPath backend, a
// PostgREST-style API filtered via query parameters. The backend is the
// system of record for projects, locations, and tracking records; this
// client holds no cache — every call is a fresh read.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/storypath/participant-api/internal/storypath"
)

// ErrNotFound is returned when a singleton lookup matches no rows.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client bound to one base URL and one bearer credential.
// Every request carries the credential; expiry is surfaced as a StatusError.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// PublishedProjects returns all projects with is_published=true.
func (c *Client) PublishedProjects(ctx context.Context) ([]storypath.Project, error) {
	var projects []storypath.Project
	if err := c.get(ctx, "/project?is_published=eq.true", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project returns one project by ID, or ErrNotFound.
func (c *Client) Project(ctx context.Context, id int64) (storypath.Project, error) {
	var projects []storypath.Project
	if err := c.get(ctx, "/project?id=eq."+strconv.FormatInt(id, 10), &projects); err != nil {
		return storypath.Project{}, err
	}
	if len(projects) == 0 {
		return storypath.Project{}, ErrNotFound
	}
	return projects[0], nil
}

// ProjectLocations returns every location belonging to a project.
func (c *Client) ProjectLocations(ctx context.Context, projectID int64) ([]storypath.Location, error) {
	var locations []storypath.Location
	path := "/location?project_id=eq." + strconv.FormatInt(projectID, 10)
	if err := c.get(ctx, path, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Location returns one location by ID, or ErrNotFound.
func (c *Client) Location(ctx context.Context, id int64) (storypath.Location, error) {
	var locations []storypath.Location
	if err := c.get(ctx, "/location?id=eq."+strconv.FormatInt(id, 10), &locations); err != nil {
		return storypath.Location{}, err
	}
	if len(locations) == 0 {
		return storypath.Location{}, ErrNotFound
	}
	return locations[0], nil
}

// ParticipantTracking returns one participant's tracking records for a project.
func (c *Client) ParticipantTracking(ctx context.Context, projectID int64, username string) ([]storypath.TrackingRecord, error) {
	var records []storypath.TrackingRecord
	path := "/tracking?project_id=eq." + strconv.FormatInt(projectID, 10) +
		"&participant_username=eq." + url.QueryEscape(username)
	if err := c.get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ProjectParticipants returns the participant_username projection of a
// project's tracking records. Duplicates are preserved; callers count
// distinct names.
func (c *Client) ProjectParticipants(ctx context.Context, projectID int64) ([]string, error) {
	var rows []struct {
		ParticipantUsername string `json:"participant_username"`
	}
	path := "/tracking?project_id=eq." + strconv.FormatInt(projectID, 10) +
		"&select=participant_username"
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	usernames := make([]string, len(rows))
	for i, row := range rows {
		usernames[i] = row.ParticipantUsername
	}
	return usernames, nil
}

// CreateTracking appends one visit event. This is the only state-mutating
// call the client makes, and it is a single atomic backend write.
func (c *Client) CreateTracking(ctx context.Context, rec storypath.TrackingRecord) (storypath.TrackingRecord, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return storypath.TrackingRecord{}, fmt.Errorf("encoding tracking record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tracking", bytes.NewReader(body))
	if err != nil {
		return storypath.TrackingRecord{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return storypath.TrackingRecord{}, fmt.Errorf("creating tracking record: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return storypath.TrackingRecord{}, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	// PostgREST returns the created row as a one-element array.
	var created []storypath.TrackingRecord
	if err := json.Unmarshal(data, &created); err != nil || len(created) == 0 {
		// Some deployments omit the representation; fall back to the input.
		return rec, nil
	}
	return created[0], nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response for %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response for %s: %w", path, err)
	}
	return nil
}

// Check reports whether the backend is reachable. Used by the health
// endpoint; a HEAD-like probe against the project resource.
func (c *Client) Check(ctx context.Context) error {
	var projects []storypath.Project
	return c.get(ctx, "/project?limit=1", &projects)
}
