package itinerary

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// fallbackDeparture is used when the origin checkpoint has no time window.
const fallbackDeparture = "09:00"

// UpdateSegmentFields merges an edit into the (from, to) segment.
//
// When the edit changes the duration and both endpoints exist, the arrival
// at "to" is recomputed from the origin's end time (or start time, or
// 09:00) plus the new duration. Arrival past midnight rolls "to" onto a later
// day, and the day shift is applied to every checkpoint after "to" in the
// sequence, whatever its city. "to" keeps its dwell duration, so its end
// time follows its new start time.
//
// A segment whose endpoints are missing only gets its fields merged. Durations
// are capped at MaxDurationHours. An edit that leaves the segment as it was
// is a no-op; the cascade only runs when the duration actually changes.
func UpdateSegmentFields(trip domain.Trip, from, to uuid.UUID, patch domain.SegmentPatch) (domain.Trip, bool) {
	si := indexOfSegment(trip.Segments, from, to)
	if si < 0 {
		return trip, false
	}
	before := trip.Segments[si]
	after := applySegmentPatch(before, patch)
	if after == before {
		return trip, false
	}

	out := trip
	out.Segments = slices.Clone(trip.Segments)
	out.Segments[si] = after

	fi := indexOfCheckpoint(trip.Checkpoints, from)
	ti := indexOfCheckpoint(trip.Checkpoints, to)
	if after.DurationHours != before.DurationHours && fi >= 0 && ti >= 0 {
		out.Checkpoints = slices.Clone(trip.Checkpoints)
		cascadeArrival(out.Checkpoints, fi, ti, after.DurationHours)
	}
	return out, true
}

func applySegmentPatch(s domain.RouteSegment, p domain.SegmentPatch) domain.RouteSegment {
	if p.Mode != nil && p.Mode.Valid() {
		s.Mode = *p.Mode
	}
	if p.DistanceKm != nil {
		s.DistanceKm = max(0, p.DistanceKm.Float(0))
	}
	if p.DurationHours != nil {
		s.DurationHours = clampHours(p.DurationHours.Float(0))
	}
	if p.Cost != nil {
		s.Cost = max(0, p.Cost.Int(0))
	}
	if p.SafetyNote != nil {
		s.SafetyNote = *p.SafetyNote
	}
	return s
}

// cascadeArrival retimes checkpoints[ti] as arriving hours after
// checkpoints[fi] departs, and shifts the day of everything after ti by the
// same number of days "to" moved. Days never drop below 1.
func cascadeArrival(checkpoints []domain.Checkpoint, fi, ti int, hours float64) {
	origin := checkpoints[fi]
	departure := origin.EndTime
	if departure == "" {
		departure = origin.StartTime
	}
	if departure == "" {
		departure = fallbackDeparture
	}

	arrival := ParseClock(departure) + hoursToMinutes(hours)
	newDay := origin.Day + arrival/minutesPerDay
	shift := newDay - checkpoints[ti].Day

	for k := ti + 1; k < len(checkpoints); k++ {
		checkpoints[k].Day = max(1, checkpoints[k].Day+shift)
	}

	dest := &checkpoints[ti]
	dest.Day = max(1, newDay)
	dest.StartTime = FormatClock(arrival)
	dest.EndTime = FormatClock(arrival + hoursToMinutes(dest.DurationHours))
}
