package itinerary

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultTripName names trips created without a name.
const DefaultTripName = "New Trip"

// NewTrip returns an empty trip with a fresh id.
func NewTrip(name string) domain.Trip {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTripName
	}
	return domain.Trip{
		ID:          uuid.New(),
		Name:        name,
		Checkpoints: []domain.Checkpoint{},
		Segments:    []domain.RouteSegment{},
	}
}

// CreateTrip appends a new empty trip to the list.
func CreateTrip(trips []domain.Trip, name string) ([]domain.Trip, domain.Trip) {
	t := NewTrip(name)
	return append(slices.Clone(trips), t), t
}

// DeleteTrip removes a trip from the list. Deleting the only remaining trip
// or an unknown id leaves the list unchanged.
func DeleteTrip(trips []domain.Trip, id uuid.UUID) ([]domain.Trip, bool) {
	if len(trips) <= 1 {
		return trips, false
	}
	i := IndexOfTrip(trips, id)
	if i < 0 {
		return trips, false
	}
	return slices.Delete(slices.Clone(trips), i, i+1), true
}

// RenameTrip sets a trip's name. Blank names are ignored.
func RenameTrip(trips []domain.Trip, id uuid.UUID, name string) ([]domain.Trip, bool) {
	name = strings.TrimSpace(name)
	i := IndexOfTrip(trips, id)
	if i < 0 || name == "" || trips[i].Name == name {
		return trips, false
	}
	out := slices.Clone(trips)
	out[i].Name = name
	return out, true
}

// ReplaceTrip swaps in t for the trip with the same id.
func ReplaceTrip(trips []domain.Trip, t domain.Trip) ([]domain.Trip, bool) {
	i := IndexOfTrip(trips, t.ID)
	if i < 0 {
		return trips, false
	}
	out := slices.Clone(trips)
	out[i] = t
	return out, true
}

// IndexOfTrip returns the position of the trip with the given id, or -1.
func IndexOfTrip(trips []domain.Trip, id uuid.UUID) int {
	return slices.IndexFunc(trips, func(t domain.Trip) bool { return t.ID == id })
}

// SetStartDate pins day 1 of the trip to a calendar date (truncated to the
// date in UTC). A nil date clears it.
func SetStartDate(trip domain.Trip, date *time.Time) (domain.Trip, bool) {
	if date == nil {
		if trip.StartDate == nil {
			return trip, false
		}
		trip.StartDate = nil
		return trip, true
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if trip.StartDate != nil && trip.StartDate.Equal(d) {
		return trip, false
	}
	trip.StartDate = &d
	return trip, true
}

// SetTotalBudget sets the trip budget. Negative values clamp to 0.
func SetTotalBudget(trip domain.Trip, amount int) (domain.Trip, bool) {
	amount = max(0, amount)
	if trip.TotalBudget == amount {
		return trip, false
	}
	trip.TotalBudget = amount
	return trip, true
}

// CalendarDate returns the calendar date of a trip-relative day, or false
// when the trip has no start date.
func CalendarDate(trip domain.Trip, day int) (time.Time, bool) {
	if trip.StartDate == nil || day < 1 {
		return time.Time{}, false
	}
	return trip.StartDate.AddDate(0, 0, day-1), true
}
