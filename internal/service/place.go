package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/trip-planner/internal/geocode"
)

// idleSearcherTTL is how long a client's Searcher is kept after its last query.
const idleSearcherTTL = 10 * time.Minute

// PlaceService serves place search and reverse lookups. Each client gets
// its own debounced Searcher so a slow response to an old query is never
// shown after a newer one.
type PlaceService struct {
	geo      geocode.Geocoder
	debounce time.Duration
	now      func() time.Time

	mu        sync.Mutex
	searchers map[string]*clientSearcher
	lastSweep time.Time
}

type clientSearcher struct {
	searcher *geocode.Searcher
	lastUsed time.Time
}

// NewPlaceService constructs a PlaceService.
func NewPlaceService(geo geocode.Geocoder, debounce time.Duration) *PlaceService {
	return &PlaceService{
		geo:       geo,
		debounce:  debounce,
		now:       time.Now,
		searchers: make(map[string]*clientSearcher),
	}
}

// Search returns places matching query for the given client. A blank query
// still cancels the client's pending search and returns no results.
// Returns geocode.ErrSuperseded when the same client issued a newer search
// first.
func (s *PlaceService) Search(ctx context.Context, clientID, query string) ([]geocode.Place, error) {
	places, err := s.searcher(clientID).Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.Search: %w", err)
	}
	return places, nil
}

// Reverse names the place at the given coordinates.
func (s *PlaceService) Reverse(ctx context.Context, lat, lng float64) (geocode.Place, error) {
	p, err := s.geo.Reverse(ctx, lat, lng)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("service.PlaceService.Reverse: %w", err)
	}
	return p, nil
}

// searcher returns the client's Searcher, creating it on first use. Searchers
// idle for longer than idleSearcherTTL are dropped along the way.
func (s *PlaceService) searcher(clientID string) *geocode.Searcher {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > idleSearcherTTL {
		for id, c := range s.searchers {
			if now.Sub(c.lastUsed) > idleSearcherTTL {
				delete(s.searchers, id)
			}
		}
		s.lastSweep = now
	}

	c, ok := s.searchers[clientID]
	if !ok {
		c = &clientSearcher{searcher: geocode.NewSearcher(s.geo, s.debounce)}
		s.searchers[clientID] = c
	}
	c.lastUsed = now
	return c.searcher
}
