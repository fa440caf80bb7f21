package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/internal/geocode"
)

// clientHeader identifies the browser tab issuing searches, so each client
// gets its own last-request-wins search stream.
const clientHeader = "X-User-ID"

// SearchPlaces handles GET /places/search?q=.
// A search overtaken by a newer one from the same client returns 409.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	client := r.Header.Get(clientHeader)
	if client == "" {
		client = r.RemoteAddr
	}

	places, err := s.places.Search(r.Context(), client, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, geocode.ErrSuperseded) {
			writeJSON(w, http.StatusConflict,
				ErrorResponse{Error: ErrorDetail{Code: "superseded", Message: "a newer search replaced this one"}})
			return
		}
		s.writeServiceError(w, r, err, "")
		return
	}
	if places == nil {
		places = []geocode.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}

// ReversePlace handles GET /places/reverse?lat=&lng=.
func (s *Server) ReversePlace(w http.ResponseWriter, r *http.Request) {
	lat, ok := floatQuery(w, r, "lat")
	if !ok {
		return
	}
	lng, ok := floatQuery(w, r, "lng")
	if !ok {
		return
	}

	p, err := s.places.Reverse(r.Context(), lat, lng)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
