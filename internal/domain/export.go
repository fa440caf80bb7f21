package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per checkpoint, with trip fields
// repeated for every checkpoint on that trip. Trips with no checkpoints yield
// one row with zero values for all checkpoint fields.
type ExportRow struct {
	// Trip fields, repeated for every checkpoint on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02", empty when unset
	TotalBudget   int

	// Checkpoint fields. Zero values when the trip has no checkpoints.
	Day        int
	City       string
	Checkpoint string
	Category   string
	StartTime  string
	EndTime    string
	Cost       int

	// Leg leaving this checkpoint; empty for the last checkpoint.
	NextMode       string
	NextDistanceKm float64
}
