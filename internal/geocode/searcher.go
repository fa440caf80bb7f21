package geocode

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Searcher debounces free-text searches for one client: each call cancels
// the one before it, and only the most recently issued call can return
// results. Older calls return ErrSuperseded even if their response arrives
// last.
type Searcher struct {
	geo      Geocoder
	debounce time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewSearcher returns a Searcher that waits debounce before issuing each query.
func NewSearcher(geo Geocoder, debounce time.Duration) *Searcher {
	return &Searcher{geo: geo, debounce: debounce}
}

// Search waits out the debounce window, then queries the geocoder.
// Blank queries return no results without a lookup.
func (s *Searcher) Search(ctx context.Context, query string) ([]Place, error) {
	ctx, seq := s.begin(ctx)

	if strings.TrimSpace(query) == "" {
		return s.finish(seq, []Place{}, nil)
	}

	if s.debounce > 0 {
		t := time.NewTimer(s.debounce)
		select {
		case <-ctx.Done():
			t.Stop()
			return s.finish(seq, nil, ctx.Err())
		case <-t.C:
		}
	}

	places, err := s.geo.Search(ctx, query)
	return s.finish(seq, places, err)
}

// begin registers a new request and cancels the previous one.
func (s *Searcher) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return ctx, s.seq
}

// finish returns the result only if seq is still the latest request.
func (s *Searcher) finish(seq uint64, places []Place, err error) ([]Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil, ErrSuperseded
	}
	s.cancel()
	s.cancel = nil
	return places, err
}
