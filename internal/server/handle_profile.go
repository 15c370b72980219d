package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/storypath/participant-api/internal/storypath"
)

// ProfileRequest is the request body for PUT /api/profile.
type ProfileRequest struct {
	Username string `json:"username"`
	ImageURI string `json:"imageUri"`
}

func handleGetProfile(profiles ProfileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := profiles.Profile(r.Context())
		if errors.Is(err, ErrNoProfile) {
			writeError(w, http.StatusNotFound, "no profile saved")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleSaveProfile(profiles ProfileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		p, err := profiles.SaveProfile(r.Context(), storypath.Profile{
			Username: req.Username,
			ImageURI: strings.TrimSpace(req.ImageURI),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
