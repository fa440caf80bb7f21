// Package service contains the application layer of the trip planner.
// It owns each user's in-memory trip list and undo history, serializes
// mutations per user, calls the itinerary engine, and hands the result to
// the repo. No SQL and no consistency rules live here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/geocode"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// idleWorkspaceTTL is how long an unused workspace stays in memory. An
// evicted workspace is reloaded from the repo on next use; its undo history
// is lost.
const idleWorkspaceTTL = 30 * time.Minute

// PlannerService implements the planner operations for every user.
type PlannerService struct {
	trips repo.TripRepo
	geo   geocode.Geocoder
	log   *slog.Logger
	now   func() time.Time

	mu         sync.Mutex
	workspaces map[string]*workspace
	lastSweep  time.Time
}

// workspace is one user's trip list plus per-trip undo history.
// mu is held for the whole of every operation so two mutations never
// interleave.
type workspace struct {
	mu      sync.Mutex
	loaded  bool
	dirty   bool // last save failed
	trips   []domain.Trip
	history map[uuid.UUID]*itinerary.History

	// Guarded by PlannerService.mu.
	refs     int
	lastUsed time.Time
}

func (w *workspace) historyFor(tripID uuid.UUID) *itinerary.History {
	h, ok := w.history[tripID]
	if !ok {
		h = itinerary.NewHistory(itinerary.HistoryLimit)
		w.history[tripID] = h
	}
	return h
}

// NewPlannerService constructs a PlannerService. geo is used to name
// checkpoints placed without a name or city and should already be wrapped
// in geocode.Fallback. A nil logger uses slog.Default().
func NewPlannerService(trips repo.TripRepo, geo geocode.Geocoder, log *slog.Logger) *PlannerService {
	if log == nil {
		log = slog.Default()
	}
	return &PlannerService{
		trips:      trips,
		geo:        geo,
		log:        log,
		now:        time.Now,
		workspaces: make(map[string]*workspace),
	}
}

// ---- trip list -------------------------------------------------------------

// ListTrips returns the user's trips. A user with no saved trips gets one
// empty default trip.
func (s *PlannerService) ListTrips(ctx context.Context, userID string) ([]domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.ListTrips: %w", err)
	}
	defer unlock()
	return slices.Clone(ws.trips), nil
}

// ListTripsPaged returns one page of the user's trips and the total count.
func (s *PlannerService) ListTripsPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int, error) {
	trips, err := s.ListTrips(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	start, end := p.Bounds(len(trips))
	return trips[start:end], len(trips), nil
}

// GetTrip returns a single trip.
// Returns domain.ErrNotFound if the user has no trip with that ID.
func (s *PlannerService) GetTrip(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.GetTrip: %w", err)
	}
	defer unlock()

	i := itinerary.IndexOfTrip(ws.trips, tripID)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.GetTrip: %w", domain.ErrNotFound)
	}
	return ws.trips[i], nil
}

// CreateTrip appends a new empty trip. A blank name gets the default name.
func (s *PlannerService) CreateTrip(ctx context.Context, userID, name string) (domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.CreateTrip: %w", err)
	}
	defer unlock()

	var created domain.Trip
	ws.trips, created = itinerary.CreateTrip(ws.trips, name)
	s.persist(ctx, userID, ws)
	return created, nil
}

// DeleteTrip removes a trip and its history, returning the remaining list.
// Returns domain.ErrNotFound for an unknown trip and domain.ErrValidation
// when it is the user's only trip.
func (s *PlannerService) DeleteTrip(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.DeleteTrip: %w", err)
	}
	defer unlock()

	if itinerary.IndexOfTrip(ws.trips, tripID) < 0 {
		return nil, fmt.Errorf("service.PlannerService.DeleteTrip: %w", domain.ErrNotFound)
	}
	remaining, changed := itinerary.DeleteTrip(ws.trips, tripID)
	if !changed {
		return nil, fmt.Errorf("service.PlannerService.DeleteTrip: %w: cannot delete the only trip", domain.ErrValidation)
	}

	ws.trips = remaining
	delete(ws.history, tripID)
	s.persist(ctx, userID, ws)
	return slices.Clone(ws.trips), nil
}

// RenameTrip sets a trip's name. The rename can be undone.
// Returns domain.ErrValidation if name is blank.
func (s *PlannerService) RenameTrip(ctx context.Context, userID string, tripID uuid.UUID, name string) (domain.Trip, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.RenameTrip: %w: name is required", domain.ErrValidation)
	}
	return s.mutate(ctx, userID, tripID, "RenameTrip", func(t domain.Trip) (domain.Trip, bool) {
		renamed, changed := itinerary.RenameTrip([]domain.Trip{t}, t.ID, name)
		return renamed[0], changed
	})
}

// SetTripStartDate pins day 1 to a calendar date; nil clears it.
func (s *PlannerService) SetTripStartDate(ctx context.Context, userID string, tripID uuid.UUID, date *time.Time) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "SetTripStartDate", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.SetStartDate(t, date)
	})
}

// SetTotalBudget sets the trip budget. Negative amounts clamp to 0.
func (s *PlannerService) SetTotalBudget(ctx context.Context, userID string, tripID uuid.UUID, amount int) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "SetTotalBudget", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.SetTotalBudget(t, amount)
	})
}

// Summary returns the cost and distance rollup of a trip.
func (s *PlannerService) Summary(ctx context.Context, userID string, tripID uuid.UUID) (itinerary.Summary, error) {
	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return itinerary.Summary{}, err
	}
	return itinerary.Summarize(t), nil
}

// ---- checkpoints, destinations, segments -----------------------------------

// InsertCheckpoint places a checkpoint and returns the updated trip and the
// new checkpoint's ID. A missing name or city is resolved by reverse
// geocoding before the engine runs; lookup failures fall back to
// placeholders and never fail the placement.
func (s *PlannerService) InsertCheckpoint(ctx context.Context, userID string, tripID uuid.UUID, in domain.NewCheckpoint) (domain.Trip, uuid.UUID, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	if in.Name == "" || in.City == "" {
		place := s.reverse(ctx, in.Lat, in.Lng)
		if in.Name == "" {
			in.Name = place.Name
		}
		if in.City == "" {
			in.City = place.City
		}
	}

	var id uuid.UUID
	trip, err := s.mutate(ctx, userID, tripID, "InsertCheckpoint", func(t domain.Trip) (domain.Trip, bool) {
		var out domain.Trip
		out, id = itinerary.InsertCheckpoint(t, in)
		return out, true
	})
	if err != nil {
		return domain.Trip{}, uuid.Nil, err
	}
	return trip, id, nil
}

// UpdateCheckpoint applies a field edit to a checkpoint.
// An unknown checkpoint returns the trip unchanged.
func (s *PlannerService) UpdateCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID, patch domain.CheckpointPatch) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "UpdateCheckpoint", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.UpdateCheckpointFields(t, checkpointID, patch)
	})
}

// MoveCheckpoint swaps a checkpoint with its neighbour (delta is +1 or -1).
func (s *PlannerService) MoveCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID, delta int) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "MoveCheckpoint", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.MoveCheckpoint(t, checkpointID, delta)
	})
}

// DeleteCheckpoint removes a checkpoint.
func (s *PlannerService) DeleteCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "DeleteCheckpoint", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.DeleteCheckpoint(t, checkpointID)
	})
}

// MoveDestination swaps a city block with its neighbour (delta is +1 or -1).
func (s *PlannerService) MoveDestination(ctx context.Context, userID string, tripID uuid.UUID, city string, delta int) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "MoveDestination", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.MoveDestination(t, city, delta)
	})
}

// DeleteDestination removes every checkpoint in a city.
func (s *PlannerService) DeleteDestination(ctx context.Context, userID string, tripID uuid.UUID, city string) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "DeleteDestination", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.DeleteDestination(t, city)
	})
}

// UpdateSegment applies a field edit to the (from, to) segment, retiming
// the destination and later days when the duration changes.
func (s *PlannerService) UpdateSegment(ctx context.Context, userID string, tripID, fromID, toID uuid.UUID, patch domain.SegmentPatch) (domain.Trip, error) {
	return s.mutate(ctx, userID, tripID, "UpdateSegment", func(t domain.Trip) (domain.Trip, bool) {
		return itinerary.UpdateSegmentFields(t, fromID, toID, patch)
	})
}

// ---- history ---------------------------------------------------------------

// Undo restores the trip to its state before the last change.
// With nothing to undo the trip is returned unchanged.
func (s *PlannerService) Undo(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error) {
	return s.travel(ctx, userID, tripID, "Undo", (*itinerary.History).Undo)
}

// Redo re-applies the last undone change.
func (s *PlannerService) Redo(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error) {
	return s.travel(ctx, userID, tripID, "Redo", (*itinerary.History).Redo)
}

func (s *PlannerService) travel(ctx context.Context, userID string, tripID uuid.UUID, op string,
	step func(*itinerary.History, domain.Trip) (domain.Trip, bool)) (domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}
	defer unlock()

	i := itinerary.IndexOfTrip(ws.trips, tripID)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, domain.ErrNotFound)
	}

	next, ok := step(ws.historyFor(tripID), ws.trips[i])
	if !ok {
		return ws.trips[i], nil
	}
	ws.trips, _ = itinerary.ReplaceTrip(ws.trips, next)
	s.persist(ctx, userID, ws)
	return next, nil
}

// ---- internals -------------------------------------------------------------

// mutate runs one engine operation against a trip. When the engine reports
// a change, the previous state is pushed to the trip's history and the trip
// list is saved. A no-op returns the current trip untouched.
func (s *PlannerService) mutate(ctx context.Context, userID string, tripID uuid.UUID, op string,
	apply func(domain.Trip) (domain.Trip, bool)) (domain.Trip, error) {
	ws, unlock, err := s.lock(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}
	defer unlock()

	i := itinerary.IndexOfTrip(ws.trips, tripID)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.%s: %w", op, domain.ErrNotFound)
	}

	before := ws.trips[i]
	after, changed := apply(before)
	if !changed {
		s.log.DebugContext(ctx, "no-op", "op", op, "user_id", userID, "trip_id", tripID)
		return before, nil
	}

	ws.historyFor(tripID).Push(before)
	ws.trips, _ = itinerary.ReplaceTrip(ws.trips, after)
	s.persist(ctx, userID, ws)
	return after, nil
}

// lock returns the user's workspace with its mutex held, loading it from the
// repo on first use. A user with nothing stored is seeded with one default
// trip, which is saved straight away so its ID survives a restart. The
// caller must call unlock.
func (s *PlannerService) lock(ctx context.Context, userID string) (*workspace, func(), error) {
	s.mu.Lock()
	s.sweepLocked(s.now())
	ws, ok := s.workspaces[userID]
	if !ok {
		ws = &workspace{history: make(map[uuid.UUID]*itinerary.History)}
		s.workspaces[userID] = ws
	}
	ws.refs++
	s.mu.Unlock()

	ws.mu.Lock()
	unlock := func() {
		ws.mu.Unlock()
		s.release(ws)
	}
	if !ws.loaded {
		trips, err := s.trips.LoadTrips(ctx, userID)
		seeded := errors.Is(err, domain.ErrNotFound)
		switch {
		case seeded:
			trips, _ = itinerary.CreateTrip(nil, itinerary.DefaultTripName)
			s.log.InfoContext(ctx, "seeded default trip", "user_id", userID)
		case err != nil:
			unlock()
			return nil, nil, fmt.Errorf("load trips: %w", err)
		}
		ws.trips = trips
		ws.loaded = true
		if seeded {
			s.persist(ctx, userID, ws)
		}
	}
	return ws, unlock, nil
}

func (s *PlannerService) release(ws *workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws.refs--
	ws.lastUsed = s.now()
}

// sweepLocked drops workspaces nobody has touched for idleWorkspaceTTL.
// Workspaces in use or holding unsaved changes are kept. s.mu must be held.
func (s *PlannerService) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < idleWorkspaceTTL {
		return
	}
	for id, ws := range s.workspaces {
		if ws.refs == 0 && !ws.dirty && now.Sub(ws.lastUsed) > idleWorkspaceTTL {
			delete(s.workspaces, id)
		}
	}
	s.lastSweep = now
}

// persist saves the workspace's trip list. Failures are logged, not
// returned: the in-memory state stays authoritative, the workspace is kept
// in memory, and the next change saves again. The save outlives a
// cancelled request.
func (s *PlannerService) persist(ctx context.Context, userID string, ws *workspace) {
	if err := s.trips.SaveTrips(context.WithoutCancel(ctx), userID, ws.trips); err != nil {
		ws.dirty = true
		s.log.ErrorContext(ctx, "failed to save trips", "user_id", userID, "error", err)
		return
	}
	ws.dirty = false
}

func (s *PlannerService) reverse(ctx context.Context, lat, lng float64) geocode.Place {
	fallback := geocode.Place{Name: geocode.FallbackName, City: geocode.FallbackCity, Lat: lat, Lng: lng}
	if s.geo == nil {
		return fallback
	}
	p, err := s.geo.Reverse(ctx, lat, lng)
	if err != nil {
		s.log.WarnContext(ctx, "reverse geocode failed", "error", err)
		return fallback
	}
	return p
}
