// Package domain contains the core data types for the trip planner.
// This package has no behaviour beyond JSON helpers and is imported by every
// other internal package (itinerary, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: an ordered checkpoint sequence plus the
// segments derived from it. Segments are never edited independently of the
// checkpoint order; see the itinerary package.
type Trip struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Checkpoints []Checkpoint   `json:"checkpoints"`
	Segments    []RouteSegment `json:"segments"`
	TotalBudget int            `json:"total_budget"`
	StartDate   *time.Time     `json:"start_date,omitempty"` // calendar date of day 1; nil when unplanned
}

// Category classifies a checkpoint.
type Category string

const (
	CategoryStation     Category = "station"
	CategoryTemple      Category = "temple"
	CategoryNature      Category = "nature"
	CategoryMarket      Category = "market"
	CategoryStay        Category = "stay"
	CategoryTransit     Category = "transit"
	CategoryFood        Category = "food"
	CategorySightseeing Category = "sightseeing"
	CategoryShopping    Category = "shopping"
	CategoryCulture     Category = "culture"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStation, CategoryTemple, CategoryNature, CategoryMarket, CategoryStay,
		CategoryTransit, CategoryFood, CategorySightseeing, CategoryShopping, CategoryCulture:
		return true
	}
	return false
}

// Checkpoint is a single waypoint on a trip.
// StartTime and EndTime are "HH:MM" 24h clock values; empty means all day.
// Day is trip-relative and starts at 1.
// City is the grouping key and is matched exactly (case-sensitive).
type Checkpoint struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Category      Category  `json:"category"`
	DurationHours float64   `json:"duration_hours"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Day           int       `json:"day"`
	Cost          int       `json:"cost"`
	Notes         string    `json:"notes,omitempty"`
	City          string    `json:"city"`
}

// NewCheckpoint carries the input for placing a checkpoint on the map.
// Day is optional; nil means "same day as the last checkpoint".
type NewCheckpoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
	City string  `json:"city,omitempty"`
	Day  *int    `json:"day,omitempty"`
}

// CheckpointPatch is a partial edit of a checkpoint. Nil fields are left
// untouched. Numeric fields hold raw user input and are coerced on apply.
type CheckpointPatch struct {
	Name          *string     `json:"name,omitempty"`
	Category      *Category   `json:"category,omitempty"`
	StartTime     *string     `json:"start_time,omitempty"`
	EndTime       *string     `json:"end_time,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
	City          *string     `json:"city,omitempty"`
	Day           *FieldInput `json:"day,omitempty"`
	Cost          *FieldInput `json:"cost,omitempty"`
	DurationHours *FieldInput `json:"duration_hours,omitempty"`
	Lat           *FieldInput `json:"lat,omitempty"`
	Lng           *FieldInput `json:"lng,omitempty"`
}
