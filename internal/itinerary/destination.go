package itinerary

import (
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// MoveDestination swaps a city with its neighbour in first-appearance order
// and rebuilds the sequence city by city, keeping each city's internal order.
// delta must be +1 or -1.
func MoveDestination(trip domain.Trip, city string, delta int) (domain.Trip, bool) {
	if delta != 1 && delta != -1 {
		return trip, false
	}
	cities := Cities(trip.Checkpoints)
	i := slices.Index(cities, city)
	j := i + delta
	if i < 0 || j < 0 || j >= len(cities) {
		return trip, false
	}
	cities[i], cities[j] = cities[j], cities[i]

	out := trip
	out.Checkpoints = groupByCity(trip.Checkpoints, cities)
	out.Segments = SyncSegments(out.Checkpoints, trip.Segments)
	return out, true
}

// DeleteDestination removes every checkpoint in city.
func DeleteDestination(trip domain.Trip, city string) (domain.Trip, bool) {
	kept := make([]domain.Checkpoint, 0, len(trip.Checkpoints))
	for _, cp := range trip.Checkpoints {
		if cp.City != city {
			kept = append(kept, cp)
		}
	}
	if len(kept) == len(trip.Checkpoints) {
		return trip, false
	}

	out := trip
	out.Checkpoints = kept
	out.Segments = SyncSegments(out.Checkpoints, trip.Segments)
	return out, true
}
