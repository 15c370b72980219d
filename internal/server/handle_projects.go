package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/storypath/participant-api/internal/storypath"
)

// ProjectSummary is one row of the published-projects listing.
type ProjectSummary struct {
	storypath.Project
	ParticipantCount int `json:"participantCount"`
}

func handleListProjects(logger *slog.Logger, backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := backend.PublishedProjects(r.Context())
		if err != nil {
			writeBackendError(w, logger, "listing projects", err)
			return
		}

		summaries := make([]ProjectSummary, len(projects))

		// Participant counts are independent per project; fetch them
		// concurrently. A failed count degrades to 0 rather than failing
		// the whole listing.
		g, ctx := errgroup.WithContext(r.Context())
		g.SetLimit(4)
		for i, p := range projects {
			i, p := i, p
			g.Go(func() error {
				usernames, err := backend.ProjectParticipants(ctx, p.ID)
				if err != nil {
					logger.Warn("fetching participant count failed", "project_id", p.ID, "error", err)
					usernames = nil
				}
				summaries[i] = ProjectSummary{
					Project:          p,
					ParticipantCount: storypath.DistinctParticipants(usernames),
				}
				return nil
			})
		}
		g.Wait()

		writeJSON(w, http.StatusOK, summaries)
	}
}
