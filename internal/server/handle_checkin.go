package server

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/storypath/participant-api/internal/gateway"
	"github.com/storypath/participant-api/internal/storypath"
)

// CheckInRequest is the scanned code payload. Both IDs must be present;
// pointers distinguish "absent" from zero.
type CheckInRequest struct {
	ProjectID  *int64 `json:"projectId"`
	LocationID *int64 `json:"locationId"`
}

// CheckInResponse reports the created visit event, the location content to
// display, and the participant's refreshed standing. AlreadyVisited is set
// when the participant had claimed this location before; the visit still
// counts and its points accumulate again.
type CheckInResponse struct {
	Record         storypath.TrackingRecord `json:"record"`
	Location       storypath.Location       `json:"location"`
	Progress       storypath.Summary        `json:"progress"`
	AlreadyVisited bool                     `json:"alreadyVisited"`
}

func handleCheckIn(logger *slog.Logger, backend Backend, deviceUsername string, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeProjectID, ok := projectIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}

		// Step 1: structural validation of the scanned payload. Nothing is
		// fetched or created before this passes; the caller re-enables
		// scanning on 400.
		var req CheckInRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "unreadable code payload")
			return
		}
		if req.ProjectID == nil || req.LocationID == nil {
			writeError(w, http.StatusBadRequest, "code payload must carry projectId and locationId")
			return
		}
		if *req.ProjectID != routeProjectID {
			writeError(w, http.StatusBadRequest, "code belongs to a different project")
			return
		}

		// Step 2: the profile gate already ran; the participant identity
		// comes from the request context.
		profile := profileFrom(r)

		// Step 3: resolve the location and the participant's history in
		// parallel. An unknown location aborts before any record is created.
		var (
			location  storypath.Location
			locations []storypath.Location
			records   []storypath.TrackingRecord
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			location, err = backend.Location(ctx, *req.LocationID)
			return err
		})
		g.Go(func() (err error) {
			locations, err = backend.ProjectLocations(ctx, routeProjectID)
			return err
		})
		g.Go(func() (err error) {
			records, err = backend.ParticipantTracking(ctx, routeProjectID, profile.Username)
			return err
		})

		if err := g.Wait(); err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				writeError(w, http.StatusNotFound, "location not found")
				return
			}
			writeBackendError(w, logger, "resolving check-in location", err)
			return
		}

		// Step 4: the single state-mutating step — one atomic backend
		// write. A failure here leaves nothing to compensate; the scan can
		// simply be retried.
		created, err := backend.CreateTracking(r.Context(), storypath.TrackingRecord{
			ProjectID:           routeProjectID,
			LocationID:          location.ID,
			Points:              location.ScorePoints,
			Username:            deviceUsername,
			ParticipantUsername: profile.Username,
		})
		if err != nil {
			writeBackendError(w, logger, "creating tracking record", err)
			return
		}

		logger.Info("check-in recorded",
			"project_id", routeProjectID,
			"location_id", location.ID,
			"points", location.ScorePoints,
			"participant", profile.Username,
		)

		broker.Publish(routeProjectID, Event{
			Type:                eventCheckIn,
			LocationID:          location.ID,
			LocationName:        location.Name,
			Points:              location.ScorePoints,
			ParticipantUsername: profile.Username,
		})

		alreadyVisited := storypath.VisitedSet(records)[location.ID]
		writeJSON(w, http.StatusCreated, CheckInResponse{
			Record:         created,
			Location:       location,
			Progress:       storypath.Summarize(locations, append(records, created)),
			AlreadyVisited: alreadyVisited,
		})
	}
}
