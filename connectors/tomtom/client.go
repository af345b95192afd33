package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/chargewise/chargewise/core/model"
	"github.com/chargewise/chargewise/core/scoring"
)

const (
	defaultBaseURL = "https://api.tomtom.com"
	// TomTom POI category for EV charging stations.
	evChargingCategory = "7309"
	defaultLimit       = 10
)

// Config holds the TomTom API settings.
type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	// Limit caps the number of stations returned by a nearby search.
	Limit int `json:"limit"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Limit <= 0 {
		c.Limit = defaultLimit
	}
}

// Client queries the TomTom search API for geocoding and nearby charging
// stations. The scoring engine never calls it; station lookup happens before
// scoring.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient returns a client for the given configuration.
func NewClient(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{cfg: cfg, http: &http.Client{Timeout: 10 * time.Second}}
}

type position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type searchResult struct {
	Position position `json:"position"`
	POI      struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"poi"`
	Address struct {
		FreeformAddress string `json:"freeformAddress"`
	} `json:"address"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Geocode resolves a freeform address to a coordinate.
func (c *Client) Geocode(ctx context.Context, address string) (model.Coordinate, string, error) {
	if address == "" {
		return model.Coordinate{}, "", fmt.Errorf("address is required")
	}
	u := fmt.Sprintf("%s/search/2/geocode/%s.json?key=%s&limit=1",
		c.cfg.BaseURL, url.PathEscape(address), url.QueryEscape(c.cfg.APIKey))

	var resp searchResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return model.Coordinate{}, "", err
	}
	if len(resp.Results) == 0 {
		return model.Coordinate{}, "", fmt.Errorf("address %q not found", address)
	}
	r := resp.Results[0]
	return model.Coordinate{Lat: r.Position.Lat, Lng: r.Position.Lon}, r.Address.FreeformAddress, nil
}

// NearbyStations searches charging stations around the given location within
// radiusKm, sorted by distance to the user.
func (c *Client) NearbyStations(ctx context.Context, loc model.Coordinate, radiusKm int) ([]model.Station, error) {
	if radiusKm <= 0 {
		radiusKm = 25
	}
	u := fmt.Sprintf("%s/search/2/nearbySearch/.json?key=%s&lat=%v&lon=%v&radius=%d&categorySet=%s&limit=%d",
		c.cfg.BaseURL, url.QueryEscape(c.cfg.APIKey), loc.Lat, loc.Lng,
		radiusKm*1000, evChargingCategory, c.cfg.Limit)

	var resp searchResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no charging stations found in this area")
	}

	stations := make([]model.Station, 0, len(resp.Results))
	for i, r := range resp.Results {
		name := r.POI.Name
		if name == "" {
			name = "EV Charging Station"
		}
		addr := r.Address.FreeformAddress
		if addr == "" {
			addr = "Address not available"
		}
		stations = append(stations, model.Station{
			ID:      fmt.Sprintf("station_%d", i),
			Name:    name,
			Address: addr,
			Lat:     r.Position.Lat,
			Lng:     r.Position.Lon,
			Phone:   r.POI.Phone,
		})
	}
	sort.SliceStable(stations, func(i, j int) bool {
		di := scoring.Haversine(loc, model.Coordinate{Lat: stations[i].Lat, Lng: stations[i].Lng})
		dj := scoring.Haversine(loc, model.Coordinate{Lat: stations[j].Lat, Lng: stations[j].Lng})
		return di < dj
	})
	return stations, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
