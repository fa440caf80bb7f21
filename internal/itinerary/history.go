package itinerary

import "github.com/pkordes/trip-planner/internal/domain"

// HistoryLimit is the number of undo snapshots kept per trip.
const HistoryLimit = 25

// History is a bounded undo/redo stack of whole-trip snapshots.
// It is not safe for concurrent use; callers serialize access.
type History struct {
	past   []domain.Trip
	future []domain.Trip
	limit  int
}

// NewHistory returns a History holding at most limit snapshots per direction.
// A non-positive limit uses HistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

// Push records the state before a mutation and discards any redo states.
// Once full, the oldest snapshot is evicted.
func (h *History) Push(before domain.Trip) {
	h.past = pushBounded(h.past, before, h.limit)
	h.future = nil
}

// Undo returns the previous snapshot and stores current for Redo.
// Returns current and false when there is nothing to undo.
func (h *History) Undo(current domain.Trip) (domain.Trip, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = pushBounded(h.future, current, h.limit)
	return prev, true
}

// Redo re-applies the most recently undone snapshot.
func (h *History) Redo(current domain.Trip) (domain.Trip, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = pushBounded(h.past, current, h.limit)
	return next, true
}

// UndoDepth is the number of snapshots available to Undo.
func (h *History) UndoDepth() int { return len(h.past) }

// RedoDepth is the number of snapshots available to Redo.
func (h *History) RedoDepth() int { return len(h.future) }

func pushBounded(stack []domain.Trip, t domain.Trip, limit int) []domain.Trip {
	stack = append(stack, t)
	if over := len(stack) - limit; over > 0 {
		stack = append([]domain.Trip(nil), stack[over:]...)
	}
	return stack
}
