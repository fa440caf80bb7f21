package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// ---- request / response bodies ---------------------------------------------

// TripResponse is the wire form of a trip.
type TripResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	StartDate   *openapi_types.Date   `json:"start_date,omitempty"`
	TotalBudget int                   `json:"total_budget"`
	Cities      []string              `json:"cities"`
	Checkpoints []CheckpointResponse  `json:"checkpoints"`
	Segments    []domain.RouteSegment `json:"segments"`
}

// CheckpointResponse adds the calendar date to a checkpoint when the trip
// has a start date.
type CheckpointResponse struct {
	domain.Checkpoint
	Date *openapi_types.Date `json:"date,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /users/{userID}/trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// TripNameRequest is the body of POST /trips and PUT /trips/{id}/name.
type TripNameRequest struct {
	Name string `json:"name"`
}

// StartDateRequest is the body of PUT /trips/{id}/start-date.
// A null start_date clears it.
type StartDateRequest struct {
	StartDate *openapi_types.Date `json:"start_date"`
}

// BudgetRequest is the body of PUT /trips/{id}/budget.
type BudgetRequest struct {
	TotalBudget domain.FieldInput `json:"total_budget"`
}

// ---- handlers --------------------------------------------------------------

// ListTrips handles GET /users/{userID}/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, ok := intQuery(w, r, "page")
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.planner.ListTripsPaged(r.Context(), userIDParam(r), params)
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CreateTrip handles POST /users/{userID}/trips.
// A blank name gets the default trip name.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripNameRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.planner.CreateTrip(r.Context(), userIDParam(r), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /users/{userID}/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.planner.GetTrip(r.Context(), userIDParam(r), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /users/{userID}/trips/{tripID}.
// Deleting a user's only trip is rejected with 422.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}

	if _, err := s.planner.DeleteTrip(r.Context(), userIDParam(r), tripID); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTrip handles PUT /users/{userID}/trips/{tripID}/name.
func (s *Server) RenameTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	var body TripNameRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.planner.RenameTrip(r.Context(), userIDParam(r), tripID, body.Name)
	s.writeTrip(w, r, trip, err)
}

// SetTripStartDate handles PUT /users/{userID}/trips/{tripID}/start-date.
func (s *Server) SetTripStartDate(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	var body StartDateRequest
	if !decodeBody(w, r, &body) {
		return
	}

	var date *time.Time
	if body.StartDate != nil {
		date = &body.StartDate.Time
	}
	trip, err := s.planner.SetTripStartDate(r.Context(), userIDParam(r), tripID, date)
	s.writeTrip(w, r, trip, err)
}

// SetTotalBudget handles PUT /users/{userID}/trips/{tripID}/budget.
// Unparseable amounts are treated as 0.
func (s *Server) SetTotalBudget(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	var body BudgetRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.planner.SetTotalBudget(r.Context(), userIDParam(r), tripID, body.TotalBudget.Int(0))
	s.writeTrip(w, r, trip, err)
}

// GetSummary handles GET /users/{userID}/trips/{tripID}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}

	sum, err := s.planner.Summary(r.Context(), userIDParam(r), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// writeTrip writes a 200 trip response, or the mapped service error.
func (s *Server) writeTrip(w http.ResponseWriter, r *http.Request, trip domain.Trip, err error) {
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// ---- mapping helpers -------------------------------------------------------

// tripToResponse converts a domain.Trip into its wire form.
func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		TotalBudget: t.TotalBudget,
		Cities:      itinerary.Cities(t.Checkpoints),
		Checkpoints: make([]CheckpointResponse, len(t.Checkpoints)),
		Segments:    t.Segments,
	}
	if resp.Cities == nil {
		resp.Cities = []string{}
	}
	if resp.Segments == nil {
		resp.Segments = []domain.RouteSegment{}
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	for i, cp := range t.Checkpoints {
		resp.Checkpoints[i] = CheckpointResponse{Checkpoint: cp}
		if d, ok := itinerary.CalendarDate(t, cp.Day); ok {
			resp.Checkpoints[i].Date = &openapi_types.Date{Time: d}
		}
	}
	return resp
}

// ---- parameter helpers -----------------------------------------------------

func userIDParam(r *http.Request) string {
	return chi.URLParam(r, "userID")
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, badParamBody("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter, writing a 400 on
// failure. An absent parameter returns nil.
func intQuery(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, badParamBody("invalid "+name))
		return nil, false
	}
	return &n, true
}

// floatQuery parses a required float query parameter, writing a 400 on
// failure.
func floatQuery(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, badParamBody("invalid "+name))
		return 0, false
	}
	return v, true
}
