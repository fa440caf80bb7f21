package itinerary

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Cities returns the distinct city names in order of first appearance.
// The list is always derived from the checkpoints, never stored.
func Cities(checkpoints []domain.Checkpoint) []string {
	seen := make(map[string]bool)
	var cities []string
	for _, cp := range checkpoints {
		if !seen[cp.City] {
			seen[cp.City] = true
			cities = append(cities, cp.City)
		}
	}
	return cities
}

// SortCheckpoints returns a new slice grouped by city (first-appearance
// order) and ordered by day, then start time, within each city. Ties keep
// their relative order.
func SortCheckpoints(checkpoints []domain.Checkpoint) []domain.Checkpoint {
	out := slices.Clone(checkpoints)
	rank := make(map[string]int)
	for i, c := range Cities(checkpoints) {
		rank[c] = i
	}
	slices.SortStableFunc(out, func(a, b domain.Checkpoint) int {
		return cmp.Or(
			cmp.Compare(rank[a.City], rank[b.City]),
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.StartTime, b.StartTime),
		)
	})
	return out
}

// groupByCity concatenates each city's checkpoints in the given city order,
// keeping each city's internal order.
func groupByCity(checkpoints []domain.Checkpoint, cities []string) []domain.Checkpoint {
	out := make([]domain.Checkpoint, 0, len(checkpoints))
	for _, city := range cities {
		for _, cp := range checkpoints {
			if cp.City == city {
				out = append(out, cp)
			}
		}
	}
	return out
}

func indexOfCheckpoint(checkpoints []domain.Checkpoint, id uuid.UUID) int {
	return slices.IndexFunc(checkpoints, func(cp domain.Checkpoint) bool { return cp.ID == id })
}
