package itinerary_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

func TestCreateTrip(t *testing.T) {
	trips, created := itinerary.CreateTrip(nil, "  Kerala Backwaters ")

	require.Len(t, trips, 1)
	assert.Equal(t, created, trips[0])
	assert.Equal(t, "Kerala Backwaters", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotNil(t, created.Checkpoints)
	assert.NotNil(t, created.Segments)

	_, unnamed := itinerary.CreateTrip(trips, "")
	assert.Equal(t, itinerary.DefaultTripName, unnamed.Name)
}

func TestDeleteTrip_OnlyTripRejected(t *testing.T) {
	trips, only := itinerary.CreateTrip(nil, "Solo")

	got, changed := itinerary.DeleteTrip(trips, only.ID)

	assert.False(t, changed)
	assert.Equal(t, trips, got)
}

func TestDeleteTrip(t *testing.T) {
	trips, first := itinerary.CreateTrip(nil, "First")
	trips, second := itinerary.CreateTrip(trips, "Second")

	got, changed := itinerary.DeleteTrip(trips, first.ID)

	require.True(t, changed)
	assert.Equal(t, []domain.Trip{second}, got)
	assert.Len(t, trips, 2, "input untouched")

	_, changed = itinerary.DeleteTrip(trips, uuid.New())
	assert.False(t, changed)
}

func TestRenameTrip(t *testing.T) {
	trips, trip := itinerary.CreateTrip(nil, "Draft")

	got, changed := itinerary.RenameTrip(trips, trip.ID, "Rajasthan")
	require.True(t, changed)
	assert.Equal(t, "Rajasthan", got[0].Name)
	assert.Equal(t, "Draft", trips[0].Name)

	_, changed = itinerary.RenameTrip(got, trip.ID, "   ")
	assert.False(t, changed, "blank names ignored")

	_, changed = itinerary.RenameTrip(got, uuid.New(), "X")
	assert.False(t, changed)
}

func TestSetStartDate(t *testing.T) {
	trip := itinerary.NewTrip("Goa")
	when := time.Date(2025, 12, 20, 15, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	got, changed := itinerary.SetStartDate(trip, &when)
	require.True(t, changed)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), *got.StartDate)

	_, changed = itinerary.SetStartDate(got, &when)
	assert.False(t, changed, "same date is a no-op")

	cleared, changed := itinerary.SetStartDate(got, nil)
	assert.True(t, changed)
	assert.Nil(t, cleared.StartDate)
}

func TestCalendarDate(t *testing.T) {
	trip := itinerary.NewTrip("Goa")
	_, ok := itinerary.CalendarDate(trip, 1)
	assert.False(t, ok)

	start := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)
	trip, _ = itinerary.SetStartDate(trip, &start)

	d, ok := itinerary.CalendarDate(trip, 3)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestSetTotalBudget(t *testing.T) {
	trip := itinerary.NewTrip("Goa")

	got, changed := itinerary.SetTotalBudget(trip, 40000)
	assert.True(t, changed)
	assert.Equal(t, 40000, got.TotalBudget)

	got, _ = itinerary.SetTotalBudget(got, -5)
	assert.Equal(t, 0, got.TotalBudget)
}

func TestSummarize(t *testing.T) {
	a := checkpointFixture("A", "Delhi", 1, "09:00")
	a.Cost = 300
	b := checkpointFixture("B", "Agra", 3, "09:00")
	b.Cost = 1200
	b.Lat = a.Lat + 30*kmNorth
	trip := tripFixture(a, b)
	trip.TotalBudget = 2000
	trip.Segments[0].Cost = 700

	s := itinerary.Summarize(trip)

	assert.Equal(t, 2, s.Checkpoints)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, []string{"Delhi", "Agra"}, s.Cities)
	assert.Equal(t, 30.0, s.DistanceKm)
	assert.Equal(t, 1.0, s.TravelHours)
	assert.Equal(t, 1500, s.CheckpointCost)
	assert.Equal(t, 700, s.TravelCost)
	assert.Equal(t, 2200, s.TotalCost)
	assert.Equal(t, -200, s.Remaining)
}
