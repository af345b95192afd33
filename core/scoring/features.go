package scoring

import (
	"math"
	"strings"

	"github.com/chargewise/chargewise/core/model"
)

// DefaultCandidateCap bounds the number of stations processed per request.
// It keeps the evolving-weight strategy's cost predictable.
const DefaultCandidateCap = 8

const (
	earthRadiusKm = 6371
	// Assumed average driving speed for the travel time estimate. This is
	// not a routing ETA.
	avgSpeedKmh = 50
)

// factorRule maps a substring of the station name or address to a fixed
// factor score. Rules are evaluated in order; the first match wins.
type factorRule struct {
	keyword string
	score   float64
}

var reliabilityRules = []factorRule{
	{"tesla", 95},
	{"electrify america", 90},
	{"chargepoint", 85},
	{"evgo", 80},
}

var chargingSpeedRules = []factorRule{
	{"supercharger", 90},
	{"fast", 90},
	{"rapid", 80},
	{"quick", 80},
	{"level 3", 75},
	{"dc", 75},
}

var costRules = []factorRule{
	{"tesla", 70},
	{"electrify america", 60},
}

var availabilityRules = []factorRule{
	{"highway", 85},
	{"mall", 75},
}

var accessibilityRules = []factorRule{
	{"highway", 90},
	{"walmart", 85},
	{"target", 85},
	{"mall", 80},
}

const (
	defaultReliability   = 70
	defaultChargingSpeed = 60
	defaultCost          = 50
	defaultAvailability  = 80
	defaultAccessibility = 75
)

func matchFactor(text string, rules []factorRule, fallback float64) float64 {
	text = strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(text, r.keyword) {
			return r.score
		}
	}
	return fallback
}

// Haversine returns the great-circle distance in kilometers between two
// coordinates.
func Haversine(a, b model.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ExtractFeatures derives a feature vector for each station relative to the
// user location. At most limit stations are processed; a limit <= 0 falls
// back to DefaultCandidateCap. The input is never mutated.
func ExtractFeatures(user model.Coordinate, stations []model.Station, limit int) []model.AnnotatedStation {
	if limit <= 0 {
		limit = DefaultCandidateCap
	}
	n := len(stations)
	if n > limit {
		n = limit
	}
	annotated := make([]model.AnnotatedStation, 0, n)
	for i := 0; i < n; i++ {
		st := stations[i]
		dist := Haversine(user, model.Coordinate{Lat: st.Lat, Lng: st.Lng})
		annotated = append(annotated, model.AnnotatedStation{
			Station: st,
			Seq:     i,
			Features: model.FeatureVector{
				DistanceKm:    dist,
				TimeMin:       dist / avgSpeedKmh * 60,
				Reliability:   matchFactor(st.Name, reliabilityRules, defaultReliability),
				ChargingSpeed: matchFactor(st.Name, chargingSpeedRules, defaultChargingSpeed),
				Cost:          matchFactor(st.Name, costRules, defaultCost),
				Availability:  matchFactor(st.Address, availabilityRules, defaultAvailability),
				Accessibility: matchFactor(st.Address, accessibilityRules, defaultAccessibility),
			},
		})
	}
	return annotated
}
