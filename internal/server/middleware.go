package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storypath/participant-api/internal/storypath"
)

type ctxKey int

const ctxKeyProfile ctxKey = iota

// requireProfile is the navigation gate: entering any project-exploration
// route requires a saved profile. The check runs before any backend fetch;
// without a profile the request is rejected and no upstream call happens.
func requireProfile(profiles ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := profiles.Profile(r.Context())
			if errors.Is(err, ErrNoProfile) {
				writeError(w, http.StatusForbidden, "profile required: create a profile before exploring projects")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyProfile, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func profileFrom(r *http.Request) storypath.Profile {
	return r.Context().Value(ctxKeyProfile).(storypath.Profile)
}

// writeBackendError converts a gateway failure into a consistent response.
// Every failure is logged; nothing is silently swallowed.
func writeBackendError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	logger.Error("backend request failed", "action", action, "error", err)
	writeError(w, http.StatusBadGateway, "backend unavailable")
}
