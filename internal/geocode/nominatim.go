package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// NominatimConfig configures a NominatimClient.
type NominatimConfig struct {
	// BaseURL of a Nominatim-compatible API, without trailing slash.
	BaseURL string
	// UserAgent identifies the application; the public OSM instance rejects
	// requests without one.
	UserAgent string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// RequestsPerSecond caps outbound traffic. The public instance allows 1.
	RequestsPerSecond float64
	// CountryCodes restricts search results (comma-separated ISO codes).
	CountryCodes string
	// Limit caps the number of search results.
	Limit int
}

// NominatimClient is a Geocoder backed by an OpenStreetMap Nominatim API.
type NominatimClient struct {
	cfg     NominatimConfig
	http    *http.Client
	limiter *rate.Limiter
}

// NewNominatimClient constructs a client. Zero config fields get defaults.
func NewNominatimClient(cfg NominatimConfig) *NominatimClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 8
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &NominatimClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// nominatimPlace is the subset of a Nominatim result we read.
type nominatimPlace struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

// Reverse resolves a coordinate to a place via /reverse.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (Place, error) {
	q := url.Values{
		"format":         {"jsonv2"},
		"lat":            {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":            {strconv.FormatFloat(lng, 'f', 6, 64)},
		"addressdetails": {"1"},
	}

	var res nominatimPlace
	if err := c.get(ctx, "/reverse", q, &res); err != nil {
		return Place{}, fmt.Errorf("geocode.NominatimClient.Reverse: %w", err)
	}
	if res.Error != "" {
		return Place{}, fmt.Errorf("geocode.NominatimClient.Reverse: %s", res.Error)
	}

	p := toPlace(res)
	p.Lat, p.Lng = lat, lng
	return p, nil
}

// Search runs a free-text query via /search.
func (c *NominatimClient) Search(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{
		"format":         {"jsonv2"},
		"q":              {query},
		"addressdetails": {"1"},
		"limit":          {strconv.Itoa(c.cfg.Limit)},
	}
	if c.cfg.CountryCodes != "" {
		q.Set("countrycodes", c.cfg.CountryCodes)
	}

	var res []nominatimPlace
	if err := c.get(ctx, "/search", q, &res); err != nil {
		return nil, fmt.Errorf("geocode.NominatimClient.Search: %w", err)
	}

	places := make([]Place, 0, len(res))
	for _, r := range res {
		places = append(places, toPlace(r))
	}
	return places, nil
}

func (c *NominatimClient) get(ctx context.Context, path string, q url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// toPlace maps a Nominatim result. The name prefers the feature name, then
// the first component of the display name; the city walks the address
// hierarchy from city down to state district.
func toPlace(r nominatimPlace) Place {
	p := Place{RawLabel: r.DisplayName}
	p.Lat, _ = strconv.ParseFloat(r.Lat, 64)
	p.Lng, _ = strconv.ParseFloat(r.Lon, 64)

	p.Name = r.Name
	if p.Name == "" {
		p.Name, _, _ = strings.Cut(r.DisplayName, ",")
		p.Name = strings.TrimSpace(p.Name)
	}
	if p.Name == "" {
		p.Name = FallbackName
	}

	for _, key := range []string{"city", "town", "village", "municipality", "county", "state_district", "state"} {
		if v := r.Address[key]; v != "" {
			p.City = v
			break
		}
	}
	if p.City == "" {
		p.City = FallbackCity
	}
	return p
}
