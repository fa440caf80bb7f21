package itinerary

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Defaults applied to a newly placed checkpoint.
const (
	DefaultCategory      = domain.CategorySightseeing
	DefaultDurationHours = 2.0
	DefaultStartTime     = "09:00"
	DefaultEndTime       = "11:00"
)

// InsertCheckpoint appends a checkpoint built from in with default fields,
// regroups the sequence and re-derives segments. It returns the updated trip
// and the new checkpoint's id.
//
// The new checkpoint lands on in.Day when given (and >= 1), otherwise on the
// day of the last checkpoint in sequence, or day 1 for an empty trip.
func InsertCheckpoint(trip domain.Trip, in domain.NewCheckpoint) (domain.Trip, uuid.UUID) {
	day := 1
	if n := len(trip.Checkpoints); n > 0 {
		day = trip.Checkpoints[n-1].Day
	}
	if in.Day != nil && *in.Day >= 1 {
		day = *in.Day
	}

	cp := domain.Checkpoint{
		ID:            uuid.New(),
		Name:          in.Name,
		Lat:           in.Lat,
		Lng:           in.Lng,
		Category:      DefaultCategory,
		DurationHours: DefaultDurationHours,
		StartTime:     DefaultStartTime,
		EndTime:       DefaultEndTime,
		Day:           day,
		City:          in.City,
	}

	out := trip
	out.Checkpoints = append(slices.Clone(trip.Checkpoints), cp)
	return regroup(out), cp.ID
}

// MoveCheckpoint swaps the checkpoint with its neighbour at index+delta.
// delta must be +1 or -1. The swap deliberately ignores city/day ordering.
func MoveCheckpoint(trip domain.Trip, id uuid.UUID, delta int) (domain.Trip, bool) {
	if delta != 1 && delta != -1 {
		return trip, false
	}
	i := indexOfCheckpoint(trip.Checkpoints, id)
	j := i + delta
	if i < 0 || j < 0 || j >= len(trip.Checkpoints) {
		return trip, false
	}

	out := trip
	out.Checkpoints = slices.Clone(trip.Checkpoints)
	out.Checkpoints[i], out.Checkpoints[j] = out.Checkpoints[j], out.Checkpoints[i]
	out.Segments = SyncSegments(out.Checkpoints, trip.Segments)
	return out, true
}

// DeleteCheckpoint removes a checkpoint and re-derives segments.
func DeleteCheckpoint(trip domain.Trip, id uuid.UUID) (domain.Trip, bool) {
	i := indexOfCheckpoint(trip.Checkpoints, id)
	if i < 0 {
		return trip, false
	}

	out := trip
	out.Checkpoints = slices.Delete(slices.Clone(trip.Checkpoints), i, i+1)
	out.Segments = SyncSegments(out.Checkpoints, trip.Segments)
	return out, true
}

// UpdateCheckpointFields applies a field edit and regroups the whole
// sequence, so an edit to day, start time, or city moves the checkpoint to
// its sorted position.
//
// Numeric fields are coerced: day defaults to 1 (and is never below 1),
// duration to 1 hour, cost to 0. Unparseable coordinates keep their current
// value. Unknown categories are ignored. Setting a start or end time without
// a duration recomputes the duration from the time window. Durations are
// capped at MaxDurationHours.
//
// An edit that leaves every field as it was is a no-op.
func UpdateCheckpointFields(trip domain.Trip, id uuid.UUID, patch domain.CheckpointPatch) (domain.Trip, bool) {
	i := indexOfCheckpoint(trip.Checkpoints, id)
	if i < 0 {
		return trip, false
	}
	edited := applyCheckpointPatch(trip.Checkpoints[i], patch)
	if edited == trip.Checkpoints[i] {
		return trip, false
	}

	out := trip
	out.Checkpoints = slices.Clone(trip.Checkpoints)
	out.Checkpoints[i] = edited
	return regroup(out), true
}

func applyCheckpointPatch(cp domain.Checkpoint, p domain.CheckpointPatch) domain.Checkpoint {
	if p.Name != nil {
		cp.Name = *p.Name
	}
	if p.Category != nil && p.Category.Valid() {
		cp.Category = *p.Category
	}
	if p.Notes != nil {
		cp.Notes = *p.Notes
	}
	if p.City != nil {
		cp.City = *p.City
	}
	if p.Day != nil {
		cp.Day = max(1, p.Day.Int(1))
	}
	if p.Cost != nil {
		cp.Cost = max(0, p.Cost.Int(0))
	}
	if p.Lat != nil {
		cp.Lat = p.Lat.Float(cp.Lat)
	}
	if p.Lng != nil {
		cp.Lng = p.Lng.Float(cp.Lng)
	}
	if p.StartTime != nil {
		cp.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		cp.EndTime = *p.EndTime
	}

	switch {
	case p.DurationHours != nil:
		cp.DurationHours = clampHours(p.DurationHours.Float(1))
	case (p.StartTime != nil || p.EndTime != nil) && cp.StartTime != "" && cp.EndTime != "":
		cp.DurationHours = clampHours(DurationBetween(cp.StartTime, cp.EndTime))
	}
	return cp
}

// regroup restores the city/day/time order and re-derives segments.
func regroup(trip domain.Trip) domain.Trip {
	previous := trip.Segments
	trip.Checkpoints = SortCheckpoints(trip.Checkpoints)
	trip.Segments = SyncSegments(trip.Checkpoints, previous)
	return trip
}
