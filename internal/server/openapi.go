package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "StoryPath Participant API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Participant-facing API for location-based scavenger hunts.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports reachability of the profile database and the remote backend.")
	getHealthz.AddRespStructure(map[string]struct {
		Status string `json:"status"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// GET /api/profile
	getProfile, _ := r.NewOperationContext(http.MethodGet, "/api/profile")
	getProfile.SetSummary("Get profile")
	getProfile.SetDescription("Returns the saved local participant profile.")
	getProfile.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	getProfile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getProfile)

	// PUT /api/profile
	putProfile, _ := r.NewOperationContext(http.MethodPut, "/api/profile")
	putProfile.SetSummary("Save profile")
	putProfile.SetDescription("Creates or overwrites the single local profile. Username must be non-empty.")
	putProfile.AddReqStructure(ProfileRequest{})
	putProfile.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	putProfile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putProfile)

	// GET /api/projects
	listProjects, _ := r.NewOperationContext(http.MethodGet, "/api/projects")
	listProjects.SetSummary("List published projects")
	listProjects.SetDescription("Published projects with distinct participant counts. Requires a saved profile.")
	listProjects.AddRespStructure([]ProjectSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listProjects.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(listProjects)

	// GET /api/projects/{projectID}
	getProject, _ := r.NewOperationContext(http.MethodGet, "/api/projects/{projectID}")
	getProject.SetSummary("Project detail")
	getProject.SetDescription("Project definition plus the participant's score and visit progress.")
	getProject.AddRespStructure(ProjectDetailResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getProject.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getProject.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getProject)

	// GET /api/projects/{projectID}/map
	getMap, _ := r.NewOperationContext(http.MethodGet, "/api/projects/{projectID}/map")
	getMap.SetSummary("Project map")
	getMap.SetDescription("Renderable location pins with parsed coordinates and visited flags. Unparseable positions are omitted.")
	getMap.AddRespStructure(MapResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMap.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getMap)

	// POST /api/projects/{projectID}/checkin
	postCheckIn, _ := r.NewOperationContext(http.MethodPost, "/api/projects/{projectID}/checkin")
	postCheckIn.SetSummary("Check in at a location")
	postCheckIn.SetDescription("Submits a scanned code payload and appends one immutable tracking record.")
	postCheckIn.AddReqStructure(CheckInRequest{})
	postCheckIn.AddRespStructure(CheckInResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postCheckIn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postCheckIn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postCheckIn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(postCheckIn)

	// GET /api/projects/{projectID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/projects/{projectID}/events")
	getEvents.SetSummary("Project event stream")
	getEvents.SetDescription("Server-Sent Events stream of check-ins and position updates for a project.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/projects/{projectID}/position
	postPosition, _ := r.NewOperationContext(http.MethodPost, "/api/projects/{projectID}/position")
	postPosition.SetSummary("Push position update")
	postPosition.SetDescription("Relays one device location-watch update to project event subscribers.")
	postPosition.AddReqStructure(PositionRequest{})
	postPosition.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusAccepted))
	postPosition.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postPosition)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
