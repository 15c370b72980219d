package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storypath/participant-api/internal/storypath"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token", 2*time.Second)
}

func TestPublishedProjects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if r.URL.RawQuery != "is_published=eq.true" {
			t.Errorf("query = %q, want is_published filter", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]storypath.Project{
			{ID: 1, Title: "Campus Tour", IsPublished: true},
		})
	})

	projects, err := c.PublishedProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Campus Tour" {
		t.Errorf("unexpected projects: %+v", projects)
	}
}

func TestLocationNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]storypath.Location{})
	})

	_, err := c.Location(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectSingleton(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project" {
			t.Errorf("path = %q, want /project", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]storypath.Project{{ID: 7, Title: "River Walk"}})
	})

	p, err := c.Project(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "jwt expired", http.StatusUnauthorized)
	})

	_, err := c.PublishedProjects(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", se.Status)
	}
}

func TestCreateTracking(t *testing.T) {
	var posted storypath.TrackingRecord
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tracking" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("Prefer = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&posted)
		posted.ID = 99
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]storypath.TrackingRecord{posted})
	})

	rec := storypath.TrackingRecord{
		ProjectID:           3,
		LocationID:          5,
		Points:              50,
		Username:            "device1",
		ParticipantUsername: "alice",
	}
	created, err := c.CreateTracking(context.Background(), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 99 {
		t.Errorf("created ID = %d, want 99", created.ID)
	}
	if posted.ParticipantUsername != "alice" || posted.Points != 50 {
		t.Errorf("backend received %+v", posted)
	}
}

func TestParticipantTrackingEscapesUsername(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("participant_username"); got != "eq.a b" {
			t.Errorf("participant_username = %q, want escaped value", got)
		}
		json.NewEncoder(w).Encode([]storypath.TrackingRecord{})
	})

	if _, err := c.ParticipantTracking(context.Background(), 1, "a b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProjectParticipantsProjection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("select"); got != "participant_username" {
			t.Errorf("select = %q", got)
		}
		w.Write([]byte(`[{"participant_username":"alice"},{"participant_username":"alice"},{"participant_username":"bob"}]`))
	})

	usernames, err := c.ProjectParticipants(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(usernames) != 3 {
		t.Fatalf("expected raw projection of 3 rows, got %d", len(usernames))
	}
	if storypath.DistinctParticipants(usernames) != 2 {
		t.Errorf("expected 2 distinct participants")
	}
}
