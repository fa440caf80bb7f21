package domain

import "github.com/google/uuid"

// TransportMode is how a route segment is travelled.
type TransportMode string

const (
	ModeTrain        TransportMode = "train"
	ModeBus          TransportMode = "bus"
	ModeAutoRickshaw TransportMode = "auto-rickshaw"
	ModeFerry        TransportMode = "ferry"
	ModeWalk         TransportMode = "walk"
	ModeTaxi         TransportMode = "taxi"
)

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeTrain, ModeBus, ModeAutoRickshaw, ModeFerry, ModeWalk, ModeTaxi:
		return true
	}
	return false
}

// RouteSegment is the directed leg between two adjacent checkpoints.
// It is identified by the (FromID, ToID) pair.
type RouteSegment struct {
	FromID        uuid.UUID     `json:"from_id"`
	ToID          uuid.UUID     `json:"to_id"`
	Mode          TransportMode `json:"mode"`
	DistanceKm    float64       `json:"distance_km"`
	DurationHours float64       `json:"duration_hours"`
	Cost          int           `json:"cost"`
	SafetyNote    string        `json:"safety_note,omitempty"`
}

// SegmentPatch is a partial edit of a route segment.
type SegmentPatch struct {
	Mode          *TransportMode `json:"mode,omitempty"`
	DistanceKm    *FieldInput    `json:"distance_km,omitempty"`
	DurationHours *FieldInput    `json:"duration_hours,omitempty"`
	Cost          *FieldInput    `json:"cost,omitempty"`
	SafetyNote    *string        `json:"safety_note,omitempty"`
}
