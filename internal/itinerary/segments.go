package itinerary

import (
	"math"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// assumedSpeedKmh is the average speed used to guess a new segment's duration.
const assumedSpeedKmh = 30.0

// minSegmentHours is the floor for a synthesized segment's duration.
const minSegmentHours = 0.5

type segmentKey struct {
	from, to uuid.UUID
}

// SyncSegments derives the segment list for an ordered checkpoint sequence.
// The result has exactly one segment per adjacent pair, in sequence order.
// A previous segment whose (from, to) pair is still adjacent is kept as is so
// user edits survive; every other previous segment is dropped.
func SyncSegments(checkpoints []domain.Checkpoint, previous []domain.RouteSegment) []domain.RouteSegment {
	if len(checkpoints) < 2 {
		return []domain.RouteSegment{}
	}

	existing := make(map[segmentKey]domain.RouteSegment, len(previous))
	for _, s := range previous {
		existing[segmentKey{s.FromID, s.ToID}] = s
	}

	out := make([]domain.RouteSegment, 0, len(checkpoints)-1)
	for i := 0; i < len(checkpoints)-1; i++ {
		from, to := checkpoints[i], checkpoints[i+1]
		if s, ok := existing[segmentKey{from.ID, to.ID}]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, newSegment(from, to))
	}
	return out
}

// newSegment guesses a segment between two checkpoints: a short
// auto-rickshaw hop inside one city, a train leg between cities.
func newSegment(from, to domain.Checkpoint) domain.RouteSegment {
	distance := math.Round(DistanceKm(from.Lat, from.Lng, to.Lat, to.Lng))

	mode := domain.ModeTrain
	if from.City == to.City {
		mode = domain.ModeAutoRickshaw
	}

	return domain.RouteSegment{
		FromID:        from.ID,
		ToID:          to.ID,
		Mode:          mode,
		DistanceKm:    distance,
		DurationHours: math.Max(minSegmentHours, round1(distance/assumedSpeedKmh)),
	}
}

func indexOfSegment(segments []domain.RouteSegment, from, to uuid.UUID) int {
	for i, s := range segments {
		if s.FromID == from && s.ToID == to {
			return i
		}
	}
	return -1
}
