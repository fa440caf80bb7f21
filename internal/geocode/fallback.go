package geocode

import (
	"context"
	"log/slog"
)

// Fallback wraps a Geocoder so lookups never fail: a failed reverse lookup
// yields the placeholder place, a failed search yields no results. Failures
// are logged.
type Fallback struct {
	next Geocoder
	log  *slog.Logger
}

// NewFallback wraps next. A nil logger uses slog.Default().
func NewFallback(next Geocoder, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{next: next, log: log}
}

// Reverse never returns an error.
func (f *Fallback) Reverse(ctx context.Context, lat, lng float64) (Place, error) {
	p, err := f.next.Reverse(ctx, lat, lng)
	if err != nil {
		f.log.WarnContext(ctx, "reverse geocode failed, using placeholder",
			"lat", lat, "lng", lng, "error", err)
		return Place{Name: FallbackName, City: FallbackCity, Lat: lat, Lng: lng}, nil
	}
	return p, nil
}

// Search never returns an error.
func (f *Fallback) Search(ctx context.Context, query string) ([]Place, error) {
	places, err := f.next.Search(ctx, query)
	if err != nil {
		if ctx.Err() == nil {
			f.log.WarnContext(ctx, "place search failed", "query", query, "error", err)
		}
		return []Place{}, nil
	}
	return places, nil
}
