package itinerary

import "github.com/pkordes/trip-planner/internal/domain"

// Summary is a derived cost and distance rollup of a trip.
type Summary struct {
	Checkpoints    int      `json:"checkpoints"`
	Days           int      `json:"days"`
	Cities         []string `json:"cities"`
	DistanceKm     float64  `json:"distance_km"`
	TravelHours    float64  `json:"travel_hours"`
	CheckpointCost int      `json:"checkpoint_cost"`
	TravelCost     int      `json:"travel_cost"`
	TotalCost      int      `json:"total_cost"`
	TotalBudget    int      `json:"total_budget"`
	Remaining      int      `json:"remaining"` // negative when over budget
}

// Summarize rolls up a trip's costs, distances, and span.
func Summarize(trip domain.Trip) Summary {
	s := Summary{
		Checkpoints: len(trip.Checkpoints),
		Cities:      Cities(trip.Checkpoints),
		TotalBudget: trip.TotalBudget,
	}
	if s.Cities == nil {
		s.Cities = []string{}
	}
	for _, cp := range trip.Checkpoints {
		s.CheckpointCost += cp.Cost
		s.Days = max(s.Days, cp.Day)
	}
	for _, seg := range trip.Segments {
		s.TravelCost += seg.Cost
		s.DistanceKm += seg.DistanceKm
		s.TravelHours += seg.DurationHours
	}
	s.TravelHours = round1(s.TravelHours)
	s.TotalCost = s.CheckpointCost + s.TravelCost
	s.Remaining = s.TotalBudget - s.TotalCost
	return s
}
