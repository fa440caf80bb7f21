package itinerary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// TestHistory_UndoRedoRoundTrip verifies that undo restores the pre-operation
// trip and redo restores the post-operation trip.
func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := itinerary.NewHistory(0)
	before := tripFixture(
		checkpointFixture("A", "Delhi", 1, "09:00"),
		checkpointFixture("B", "Delhi", 1, "12:00"),
	)

	h.Push(before)
	after, _ := itinerary.DeleteDestination(before, "Delhi")

	undone, ok := h.Undo(after)
	require.True(t, ok)
	assert.Equal(t, before, undone)

	redone, ok := h.Redo(undone)
	require.True(t, ok)
	assert.Equal(t, after, redone)
}

func TestHistory_EmptyStacks(t *testing.T) {
	h := itinerary.NewHistory(0)
	trip := tripFixture()

	got, ok := h.Undo(trip)
	assert.False(t, ok)
	assert.Equal(t, trip, got)

	got, ok = h.Redo(trip)
	assert.False(t, ok)
	assert.Equal(t, trip, got)
}

// TestHistory_CapEvictsOldest pushes 26 snapshots and verifies only the most
// recent 25 can be undone.
func TestHistory_CapEvictsOldest(t *testing.T) {
	h := itinerary.NewHistory(0)
	snapshots := make([]domain.Trip, 26)
	for i := range snapshots {
		snapshots[i] = tripFixture()
		snapshots[i].TotalBudget = i
		h.Push(snapshots[i])
	}
	require.Equal(t, itinerary.HistoryLimit, h.UndoDepth())

	current := tripFixture()
	var last domain.Trip
	for range itinerary.HistoryLimit {
		var ok bool
		last, ok = h.Undo(current)
		require.True(t, ok)
		current = last
	}
	assert.Equal(t, 1, last.TotalBudget, "snapshot 0 was evicted")

	_, ok := h.Undo(current)
	assert.False(t, ok)
}

func TestHistory_PushClearsRedo(t *testing.T) {
	h := itinerary.NewHistory(0)
	a := tripFixture()
	b := tripFixture()
	c := tripFixture()

	h.Push(a)
	_, _ = h.Undo(b)
	require.Equal(t, 1, h.RedoDepth())

	h.Push(c)
	assert.Equal(t, 0, h.RedoDepth())
}
