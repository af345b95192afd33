package stations

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chargewise/chargewise/core/logger"
	"github.com/chargewise/chargewise/core/model"
	"github.com/chargewise/chargewise/core/scoring"
)

// StationSource finds charging stations near a location. Implemented by the
// TomTom connector.
type StationSource interface {
	NearbyStations(ctx context.Context, loc model.Coordinate, radiusKm int) ([]model.Station, error)
	Geocode(ctx context.Context, address string) (model.Coordinate, string, error)
}

type searchEntry struct {
	model.Station
	Distance   string  `json:"distance"`
	DistanceKm float64 `json:"distanceKm"`
}

// NewSearchHandler serves GET /api/stations?lat=&lng=&distance= using the
// given source, returning stations sorted by distance.
func NewSearchHandler(source StationSource, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Coordinates required"})
			return
		}
		radius := 25
		if v := r.URL.Query().Get("distance"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				radius = parsed
			}
		}

		loc := model.Coordinate{Lat: lat, Lng: lng}
		found, err := source.NearbyStations(r.Context(), loc, radius)
		if err != nil {
			log.Errorf("station search: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to find charging stations"})
			return
		}

		entries := make([]searchEntry, 0, len(found))
		for _, st := range found {
			d := scoring.Haversine(loc, model.Coordinate{Lat: st.Lat, Lng: st.Lng})
			entries = append(entries, searchEntry{
				Station:    st,
				Distance:   fmt.Sprintf("%.1f km", d),
				DistanceKm: d,
			})
		}
		writeJSON(w, http.StatusOK, map[string][]searchEntry{"stations": entries})
	})
}

// NewGeocodeHandler serves GET /api/geocode?address= using the given source.
func NewGeocodeHandler(source StationSource, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		address := r.URL.Query().Get("address")
		if address == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Please enter an address"})
			return
		}
		loc, resolved, err := source.Geocode(r.Context(), address)
		if err != nil {
			log.Errorf("geocode: %v", err)
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("Address %q not found", address)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"lat":     loc.Lat,
			"lng":     loc.Lng,
			"address": resolved,
		})
	})
}
