package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripLister is the read side ExportService needs. *PlannerService
// satisfies it, so exports reflect the in-memory state including changes
// whose save failed.
type TripLister interface {
	ListTrips(ctx context.Context, userID string) ([]domain.Trip, error)
}

// ExportService assembles a flat export of all of a user's trips.
type ExportService struct {
	trips TripLister
}

// NewExportService constructs an ExportService.
func NewExportService(trips TripLister) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per checkpoint across all trips, in trip
// order then itinerary order. Trips with no checkpoints contribute one row
// with empty checkpoint fields.
func (s *ExportService) Export(ctx context.Context, userID string) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var rows []domain.ExportRow
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:      t.ID.String(),
			TripName:    t.Name,
			TotalBudget: t.TotalBudget,
		}
		if t.StartDate != nil {
			base.TripStartDate = t.StartDate.Format("2006-01-02")
		}

		if len(t.Checkpoints) == 0 {
			rows = append(rows, base)
			continue
		}

		for i, cp := range t.Checkpoints {
			row := base
			row.Day = cp.Day
			row.City = cp.City
			row.Checkpoint = cp.Name
			row.Category = string(cp.Category)
			row.StartTime = cp.StartTime
			row.EndTime = cp.EndTime
			row.Cost = cp.Cost
			// Segments are aligned with checkpoints: segment i leaves checkpoint i.
			if i < len(t.Segments) {
				row.NextMode = string(t.Segments[i].Mode)
				row.NextDistanceKm = t.Segments[i].DistanceKm
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
