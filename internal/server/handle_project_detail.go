package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/storypath/participant-api/internal/gateway"
	"github.com/storypath/participant-api/internal/storypath"
)

// ProjectDetailResponse is the project view: the hunt definition plus the
// current participant's running score and visit figures.
type ProjectDetailResponse struct {
	Project  storypath.Project `json:"project"`
	Progress storypath.Summary `json:"progress"`
}

func projectIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	return id, err == nil
}

func handleProjectDetail(logger *slog.Logger, backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := projectIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		profile := profileFrom(r)

		var (
			project   storypath.Project
			locations []storypath.Location
			records   []storypath.TrackingRecord
		)

		// The project, its locations, and the participant's tracking
		// records are independent reads against the backend.
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			project, err = backend.Project(ctx, projectID)
			return err
		})
		g.Go(func() (err error) {
			locations, err = backend.ProjectLocations(ctx, projectID)
			return err
		})
		g.Go(func() (err error) {
			records, err = backend.ParticipantTracking(ctx, projectID, profile.Username)
			return err
		})

		if err := g.Wait(); err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				writeError(w, http.StatusNotFound, "project not found")
				return
			}
			writeBackendError(w, logger, "fetching project detail", err)
			return
		}

		writeJSON(w, http.StatusOK, ProjectDetailResponse{
			Project:  project,
			Progress: storypath.Summarize(locations, records),
		})
	}
}
