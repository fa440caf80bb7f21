// Package geocode resolves coordinates to place names and searches places
// by free text. The planner only ever consumes its results; lookups never
// touch trip state.
package geocode

import (
	"context"
	"errors"
)

// Placeholders used when a lookup fails.
const (
	FallbackName = "Point of Interest"
	FallbackCity = "India"
)

// ErrSuperseded is returned by Searcher.Search when a newer query was issued
// before this one completed.
var ErrSuperseded = errors.New("geocode: superseded by a newer search")

// Place is a named location.
type Place struct {
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RawLabel string  `json:"raw_label,omitempty"`
}

// Geocoder performs forward and reverse lookups.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (Place, error)
	Search(ctx context.Context, query string) ([]Place, error)
}
