package server

import (
	"net/http"

	"github.com/storypath/participant-api/internal/storypath"
)

// PositionRequest is one device location-watch update.
type PositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func handlePositionUpdate(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := projectIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}

		var req PositionRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
			writeError(w, http.StatusBadRequest, "lat and lng out of range")
			return
		}

		profile := profileFrom(r)
		broker.Publish(projectID, Event{
			Type:                eventPositionUpdate,
			ParticipantUsername: profile.Username,
			Position:            &storypath.Coordinate{Lat: req.Lat, Lng: req.Lng},
		})

		w.WriteHeader(http.StatusAccepted)
	}
}
