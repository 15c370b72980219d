package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storypath/participant-api/internal/database"
	"github.com/storypath/participant-api/internal/gateway"
	"github.com/storypath/participant-api/internal/handler/health"
	"github.com/storypath/participant-api/internal/migrations"
	"github.com/storypath/participant-api/internal/storypath"
)

// fakeBackend simulates the hosted PostgREST backend with in-memory data
// and per-endpoint call counters, so tests can assert which upstream calls
// were (or were not) issued.
type fakeBackend struct {
	mu        sync.Mutex
	projects  []storypath.Project
	locations []storypath.Location
	tracking  []storypath.TrackingRecord
	calls     map[string]int
	srv       *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{calls: make(map[string]int)}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()

	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/project":
		out := []storypath.Project{}
		f.mu.Lock()
		for _, p := range f.projects {
			if q.Get("is_published") == "eq.true" && !p.IsPublished {
				continue
			}
			if id := q.Get("id"); id != "" && id != "eq."+strconv.FormatInt(p.ID, 10) {
				continue
			}
			out = append(out, p)
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(out)

	case "/location":
		out := []storypath.Location{}
		f.mu.Lock()
		for _, loc := range f.locations {
			if id := q.Get("id"); id != "" && id != "eq."+strconv.FormatInt(loc.ID, 10) {
				continue
			}
			if pid := q.Get("project_id"); pid != "" && pid != "eq."+strconv.FormatInt(loc.ProjectID, 10) {
				continue
			}
			out = append(out, loc)
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(out)

	case "/tracking":
		if r.Method == http.MethodPost {
			var rec storypath.TrackingRecord
			json.NewDecoder(r.Body).Decode(&rec)
			f.mu.Lock()
			rec.ID = int64(len(f.tracking) + 1)
			f.tracking = append(f.tracking, rec)
			f.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]storypath.TrackingRecord{rec})
			return
		}

		f.mu.Lock()
		matched := []storypath.TrackingRecord{}
		for _, rec := range f.tracking {
			if pid := q.Get("project_id"); pid != "" && pid != "eq."+strconv.FormatInt(rec.ProjectID, 10) {
				continue
			}
			if u := q.Get("participant_username"); u != "" && u != "eq."+rec.ParticipantUsername {
				continue
			}
			matched = append(matched, rec)
		}
		f.mu.Unlock()

		if q.Get("select") == "participant_username" {
			rows := make([]map[string]string, len(matched))
			for i, rec := range matched {
				rows[i] = map[string]string{"participant_username": rec.ParticipantUsername}
			}
			json.NewEncoder(w).Encode(rows)
			return
		}
		json.NewEncoder(w).Encode(matched)

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeBackend) trackingRecords() []storypath.TrackingRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storypath.TrackingRecord(nil), f.tracking...)
}

// newTestRouter wires the real routes against an in-memory profile store
// and the fake backend.
func newTestRouter(t *testing.T, fb *fakeBackend) (*chi.Mux, ProfileStore) {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening profile db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	profiles := NewSQLiteStore(db)
	backend := gateway.New(fb.srv.URL, "test-token", 2*time.Second)

	r := chi.NewRouter()
	addRoutes(r, discardLogger(), Deps{
		Profiles:       profiles,
		Backend:        backend,
		DeviceUsername: "device1",
		HealthChecks:   map[string]health.Checker{},
	})
	return r, profiles
}

func saveProfile(t *testing.T, profiles ProfileStore, username string) {
	t.Helper()
	if _, err := profiles.SaveProfile(context.Background(), storypath.Profile{Username: username}); err != nil {
		t.Fatalf("saving profile: %v", err)
	}
}

func doJSON(t *testing.T, r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
