package itinerary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// kmNorth is the latitude offset of roughly one kilometre.
const kmNorth = 1 / 111.1949

// checkpointFixture returns a checkpoint with sensible defaults.
// Callers override individual fields after calling this function.
func checkpointFixture(name, city string, day int, start string) domain.Checkpoint {
	return domain.Checkpoint{
		ID:            uuid.New(),
		Name:          name,
		Lat:           19.07,
		Lng:           72.87,
		Category:      domain.CategorySightseeing,
		DurationHours: 2,
		StartTime:     start,
		EndTime:       itinerary.FormatClock(itinerary.ParseClock(start) + 120),
		Day:           day,
		City:          city,
	}
}

// tripFixture builds a trip around the given checkpoints with derived segments.
func tripFixture(cps ...domain.Checkpoint) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Name:        "India Loop",
		Checkpoints: cps,
		Segments:    itinerary.SyncSegments(cps, nil),
		TotalBudget: 50000,
	}
}

// requireConsistent asserts the segment invariants that must hold after any
// engine operation.
func requireConsistent(t *testing.T, trip domain.Trip) {
	t.Helper()
	want := max(0, len(trip.Checkpoints)-1)
	require.Len(t, trip.Segments, want, "one segment per adjacent pair")
	for i, s := range trip.Segments {
		require.Equal(t, trip.Checkpoints[i].ID, s.FromID, "segment %d from", i)
		require.Equal(t, trip.Checkpoints[i+1].ID, s.ToID, "segment %d to", i)
	}
}

// requireCitiesContiguous asserts that no city appears in two separate runs.
func requireCitiesContiguous(t *testing.T, cps []domain.Checkpoint) {
	t.Helper()
	closed := make(map[string]bool)
	for i, cp := range cps {
		if i > 0 && cps[i-1].City != cp.City {
			closed[cps[i-1].City] = true
		}
		require.False(t, closed[cp.City], "city %q is split at index %d", cp.City, i)
	}
}

// requireSortedWithinCities asserts (day, start time) order inside each city.
func requireSortedWithinCities(t *testing.T, cps []domain.Checkpoint) {
	t.Helper()
	for i := 1; i < len(cps); i++ {
		a, b := cps[i-1], cps[i]
		if a.City != b.City {
			continue
		}
		ok := a.Day < b.Day || (a.Day == b.Day && a.StartTime <= b.StartTime)
		require.True(t, ok, "%s (day %d %s) before %s (day %d %s)", a.Name, a.Day, a.StartTime, b.Name, b.Day, b.StartTime)
	}
}

func names(cps []domain.Checkpoint) []string {
	out := make([]string, len(cps))
	for i, cp := range cps {
		out[i] = cp.Name
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func input(s string) *domain.FieldInput {
	f := domain.FieldInput(s)
	return &f
}
