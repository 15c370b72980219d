// Package storypath defines the core domain types and the scoring rules.
// It has zero external dependencies — everything here is pure Go.
package storypath

// Profile is the local participant identity. Exactly one exists per
// deployment; saving overwrites the previous one.
type Profile struct {
	Username string `json:"username"`
	ImageURI string `json:"imageUri,omitempty"`
	SavedAt  string `json:"savedAt,omitempty"`
}

// Project is a hunt definition. Owned by the remote backend; read-only here.
type Project struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	IsPublished        bool   `json:"is_published"`
	ParticipantScoring string `json:"participant_scoring"`
	Username           string `json:"username"`
	Instructions       string `json:"instructions"`
	InitialClue        string `json:"initial_clue"`
	HomescreenDisplay  string `json:"homescreen_display"`
}

// Location is a geofenced point of interest within a project, worth a fixed
// point value. Position is the backend's "(lat,lng)" string encoding.
type Location struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Name        string `json:"location_name"`
	Trigger     string `json:"location_trigger"`
	Position    string `json:"location_position"`
	ScorePoints int    `json:"score_points"`
	Clue        string `json:"clue"`
	Content     string `json:"location_content"`
}

// TrackingRecord is one immutable visit event: a participant claimed a
// location's points. Append-only; never updated or deleted.
type TrackingRecord struct {
	ID                  int64  `json:"id,omitempty"`
	ProjectID           int64  `json:"project_id"`
	LocationID          int64  `json:"location_id"`
	Points              int    `json:"points"`
	Username            string `json:"username"`
	ParticipantUsername string `json:"participant_username"`
}

// Participant scoring modes as published by the backend.
const (
	ScoringNotScored      = "Not Scored"
	ScoringNumberOfVisits = "Number of Scanned QR Codes"
	ScoringNumberOfPoints = "Number of Locations Entered"
)
