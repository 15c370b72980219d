package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/storypath/participant-api/internal/storypath"
)

// MapPin is one renderable location: parsed coordinate plus visited flag.
// Locations whose position string does not parse are omitted.
type MapPin struct {
	LocationID int64                `json:"locationId"`
	Name       string               `json:"name"`
	Position   storypath.Coordinate `json:"position"`
	Visited    bool                 `json:"visited"`
}

// MapResponse backs the map screen for one project.
type MapResponse struct {
	Pins     []MapPin          `json:"pins"`
	Progress storypath.Summary `json:"progress"`
}

func handleProjectMap(logger *slog.Logger, backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := projectIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		profile := profileFrom(r)

		var (
			locations []storypath.Location
			records   []storypath.TrackingRecord
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			locations, err = backend.ProjectLocations(ctx, projectID)
			return err
		})
		g.Go(func() (err error) {
			records, err = backend.ParticipantTracking(ctx, projectID, profile.Username)
			return err
		})

		if err := g.Wait(); err != nil {
			writeBackendError(w, logger, "fetching map data", err)
			return
		}

		visited := storypath.VisitedSet(records)
		pins := make([]MapPin, 0, len(locations))
		for _, loc := range locations {
			pos, err := storypath.ParsePosition(loc.Position)
			if err != nil {
				logger.Warn("skipping unrenderable location",
					"location_id", loc.ID, "position", loc.Position)
				continue
			}
			pins = append(pins, MapPin{
				LocationID: loc.ID,
				Name:       loc.Name,
				Position:   pos,
				Visited:    visited[loc.ID],
			})
		}

		writeJSON(w, http.StatusOK, MapResponse{
			Pins:     pins,
			Progress: storypath.Summarize(locations, records),
		})
	}
}
