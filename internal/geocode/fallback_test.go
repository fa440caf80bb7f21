package geocode_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/geocode"
)

// mockGeocoder is a hand-written test double for geocode.Geocoder.
type mockGeocoder struct {
	reverse func(ctx context.Context, lat, lng float64) (geocode.Place, error)
	search  func(ctx context.Context, query string) ([]geocode.Place, error)
}

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lng float64) (geocode.Place, error) {
	return m.reverse(ctx, lat, lng)
}
func (m *mockGeocoder) Search(ctx context.Context, query string) ([]geocode.Place, error) {
	return m.search(ctx, query)
}

// compile-time check: mockGeocoder must satisfy geocode.Geocoder.
var _ geocode.Geocoder = (*mockGeocoder)(nil)

func TestFallback_ReverseFailureUsesPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	f := geocode.NewFallback(&mockGeocoder{
		reverse: func(context.Context, float64, float64) (geocode.Place, error) {
			return geocode.Place{}, context.DeadlineExceeded
		},
	}, slog.New(slog.NewJSONHandler(&buf, nil)))

	got, err := f.Reverse(context.Background(), 12.9, 77.6)

	require.NoError(t, err)
	assert.Equal(t, geocode.Place{Name: "Point of Interest", City: "India", Lat: 12.9, Lng: 77.6}, got)
	assert.Contains(t, buf.String(), "reverse geocode failed")
}

func TestFallback_ReversePassesThrough(t *testing.T) {
	want := geocode.Place{Name: "Lalbagh", City: "Bengaluru"}
	f := geocode.NewFallback(&mockGeocoder{
		reverse: func(context.Context, float64, float64) (geocode.Place, error) { return want, nil },
	}, nil)

	got, err := f.Reverse(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFallback_SearchFailureIsEmpty(t *testing.T) {
	f := geocode.NewFallback(&mockGeocoder{
		search: func(context.Context, string) ([]geocode.Place, error) { return nil, errors.New("connection refused") },
	}, nil)

	got, err := f.Search(context.Background(), "ooty")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
