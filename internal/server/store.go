package server

import (
	"context"
	"errors"

	"github.com/storypath/participant-api/internal/handler/health"
	"github.com/storypath/participant-api/internal/storypath"
)

// ErrNoProfile is returned when no profile has been saved yet.
var ErrNoProfile = errors.New("no profile saved")

// ProfileStore holds the single local participant identity. At most one
// profile exists; saving overwrites it.
type ProfileStore interface {
	Profile(ctx context.Context) (storypath.Profile, error)
	SaveProfile(ctx context.Context, p storypath.Profile) (storypath.Profile, error)
}

// Backend is the slice of the remote gateway this layer consumes. The
// backend owns projects, locations, and tracking records; this side only
// reads them and appends visit events.
type Backend interface {
	PublishedProjects(ctx context.Context) ([]storypath.Project, error)
	Project(ctx context.Context, id int64) (storypath.Project, error)
	ProjectLocations(ctx context.Context, projectID int64) ([]storypath.Location, error)
	Location(ctx context.Context, id int64) (storypath.Location, error)
	ParticipantTracking(ctx context.Context, projectID int64, username string) ([]storypath.TrackingRecord, error)
	ProjectParticipants(ctx context.Context, projectID int64) ([]string, error)
	CreateTracking(ctx context.Context, rec storypath.TrackingRecord) (storypath.TrackingRecord, error)
}

// Deps bundles what the routes need. DeviceUsername is the submitting
// device identity stamped on every created tracking record.
type Deps struct {
	Profiles       ProfileStore
	Backend        Backend
	DeviceUsername string
	HealthChecks   map[string]health.Checker
}
