// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. They are split into resource-specific
// files (health.go, trip.go, itinerary.go, ...) but share the same Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/geocode"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// PlannerServicer defines the planner operations the trip and itinerary
// handlers depend on. Defining the interface here (in the consumer package)
// lets handler tests inject a mock without a database or service layer.
type PlannerServicer interface {
	ListTripsPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int, error)
	GetTrip(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error)
	CreateTrip(ctx context.Context, userID, name string) (domain.Trip, error)
	DeleteTrip(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.Trip, error)
	RenameTrip(ctx context.Context, userID string, tripID uuid.UUID, name string) (domain.Trip, error)
	SetTripStartDate(ctx context.Context, userID string, tripID uuid.UUID, date *time.Time) (domain.Trip, error)
	SetTotalBudget(ctx context.Context, userID string, tripID uuid.UUID, amount int) (domain.Trip, error)
	Summary(ctx context.Context, userID string, tripID uuid.UUID) (itinerary.Summary, error)

	InsertCheckpoint(ctx context.Context, userID string, tripID uuid.UUID, in domain.NewCheckpoint) (domain.Trip, uuid.UUID, error)
	UpdateCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID, patch domain.CheckpointPatch) (domain.Trip, error)
	MoveCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID, delta int) (domain.Trip, error)
	DeleteCheckpoint(ctx context.Context, userID string, tripID, checkpointID uuid.UUID) (domain.Trip, error)
	MoveDestination(ctx context.Context, userID string, tripID uuid.UUID, city string, delta int) (domain.Trip, error)
	DeleteDestination(ctx context.Context, userID string, tripID uuid.UUID, city string) (domain.Trip, error)
	UpdateSegment(ctx context.Context, userID string, tripID, fromID, toID uuid.UUID, patch domain.SegmentPatch) (domain.Trip, error)
	Undo(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error)
	Redo(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error)
}

// PlaceServicer defines the geocoding operations the place handlers use.
type PlaceServicer interface {
	Search(ctx context.Context, clientID, query string) ([]geocode.Place, error)
	Reverse(ctx context.Context, lat, lng float64) (geocode.Place, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, userID string) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
// Any service may be nil when a test only exercises other routes.
type Server struct {
	planner PlannerServicer
	places  PlaceServicer
	export  ExportServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger uses slog.Default().
func NewServer(planner PlannerServicer, places PlaceServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{planner: planner, places: places, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Handler returns a chi router with every API route mounted.
// Cross-cutting middleware (logging, CORS, compression) is applied by the
// caller so tests can exercise routes in isolation.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/places", func(r chi.Router) {
		r.Get("/search", s.SearchPlaces)
		r.Get("/reverse", s.ReversePlace)
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/export", s.GetExport)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Put("/name", s.RenameTrip)
				r.Put("/start-date", s.SetTripStartDate)
				r.Put("/budget", s.SetTotalBudget)
				r.Get("/summary", s.GetSummary)

				r.Post("/checkpoints", s.InsertCheckpoint)
				r.Patch("/checkpoints/{checkpointID}", s.UpdateCheckpoint)
				r.Delete("/checkpoints/{checkpointID}", s.DeleteCheckpoint)
				r.Post("/checkpoints/{checkpointID}/move", s.MoveCheckpoint)

				r.Post("/destinations/{city}/move", s.MoveDestination)
				r.Delete("/destinations/{city}", s.DeleteDestination)

				r.Patch("/segments/{fromID}/{toID}", s.UpdateSegment)

				r.Post("/undo", s.Undo)
				r.Post("/redo", s.Redo)
			})
		})
	})

	return r
}
