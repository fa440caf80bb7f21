package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// MoveRequest is the body of the checkpoint and destination move endpoints.
// Delta must be +1 or -1; other values leave the trip unchanged.
type MoveRequest struct {
	Delta int `json:"delta"`
}

// InsertCheckpointResponse is the body of POST .../checkpoints.
type InsertCheckpointResponse struct {
	CheckpointID uuid.UUID    `json:"checkpoint_id"`
	Trip         TripResponse `json:"trip"`
}

// InsertCheckpoint handles POST /users/{userID}/trips/{tripID}/checkpoints.
// Name and city are optional; missing values are resolved by reverse
// geocoding.
func (s *Server) InsertCheckpoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	var body domain.NewCheckpoint
	if !decodeBody(w, r, &body) {
		return
	}

	trip, id, err := s.planner.InsertCheckpoint(r.Context(), userIDParam(r), tripID, body)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, InsertCheckpointResponse{CheckpointID: id, Trip: tripToResponse(trip)})
}

// UpdateCheckpoint handles PATCH .../checkpoints/{checkpointID}.
// Numeric fields accept numbers or strings; unparseable values are coerced
// to defaults rather than rejected.
func (s *Server) UpdateCheckpoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	cpID, ok := uuidParam(w, r, "checkpointID")
	if !ok {
		return
	}
	var patch domain.CheckpointPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	trip, err := s.planner.UpdateCheckpoint(r.Context(), userIDParam(r), tripID, cpID, patch)
	s.writeTrip(w, r, trip, err)
}

// DeleteCheckpoint handles DELETE .../checkpoints/{checkpointID}.
func (s *Server) DeleteCheckpoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	cpID, ok := uuidParam(w, r, "checkpointID")
	if !ok {
		return
	}

	trip, err := s.planner.DeleteCheckpoint(r.Context(), userIDParam(r), tripID, cpID)
	s.writeTrip(w, r, trip, err)
}

// MoveCheckpoint handles POST .../checkpoints/{checkpointID}/move.
func (s *Server) MoveCheckpoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	cpID, ok := uuidParam(w, r, "checkpointID")
	if !ok {
		return
	}
	var body MoveRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.planner.MoveCheckpoint(r.Context(), userIDParam(r), tripID, cpID, body.Delta)
	s.writeTrip(w, r, trip, err)
}

// MoveDestination handles POST .../destinations/{city}/move.
func (s *Server) MoveDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	city, ok := cityParam(w, r)
	if !ok {
		return
	}
	var body MoveRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.planner.MoveDestination(r.Context(), userIDParam(r), tripID, city, body.Delta)
	s.writeTrip(w, r, trip, err)
}

// DeleteDestination handles DELETE .../destinations/{city}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	city, ok := cityParam(w, r)
	if !ok {
		return
	}

	trip, err := s.planner.DeleteDestination(r.Context(), userIDParam(r), tripID, city)
	s.writeTrip(w, r, trip, err)
}

// UpdateSegment handles PATCH .../segments/{fromID}/{toID}.
// Changing duration_hours retimes the destination checkpoint and shifts
// later days.
func (s *Server) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	fromID, ok := uuidParam(w, r, "fromID")
	if !ok {
		return
	}
	toID, ok := uuidParam(w, r, "toID")
	if !ok {
		return
	}
	var patch domain.SegmentPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	trip, err := s.planner.UpdateSegment(r.Context(), userIDParam(r), tripID, fromID, toID, patch)
	s.writeTrip(w, r, trip, err)
}

// Undo handles POST .../undo.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.planner.Undo(r.Context(), userIDParam(r), tripID)
	s.writeTrip(w, r, trip, err)
}

// Redo handles POST .../redo.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	tripID, ok := uuidParam(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.planner.Redo(r.Context(), userIDParam(r), tripID)
	s.writeTrip(w, r, trip, err)
}

// cityParam reads the {city} path parameter. Cities are matched exactly, so
// the value is never trimmed or case-folded. chi matches on the raw path
// when the request carries escaped slashes, in which case the value is
// still percent-encoded.
func cityParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	city := chi.URLParam(r, "city")
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(city); err == nil {
			city = decoded
		}
	}
	if city == "" {
		writeJSON(w, http.StatusBadRequest, badParamBody("invalid city"))
		return "", false
	}
	return city, true
}
