package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/storypath/participant-api/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("StoryPath Participant API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.HealthChecks).Routes())

	// Profile routes are ungated: creating a profile is how the gate opens.
	r.Get("/api/profile", handleGetProfile(deps.Profiles))
	r.Put("/api/profile", handleSaveProfile(deps.Profiles))

	// Project-exploration routes sit behind the profile gate.
	r.Route("/api/projects", func(r chi.Router) {
		r.Use(requireProfile(deps.Profiles))
		r.Get("/", handleListProjects(logger, deps.Backend))
		r.Get("/{projectID}", handleProjectDetail(logger, deps.Backend))
		r.Get("/{projectID}/map", handleProjectMap(logger, deps.Backend))
		r.Post("/{projectID}/checkin", handleCheckIn(logger, deps.Backend, deps.DeviceUsername, broker))
		r.Get("/{projectID}/events", handleProjectEvents(broker))
		r.Post("/{projectID}/position", handlePositionUpdate(broker))
	})
}
