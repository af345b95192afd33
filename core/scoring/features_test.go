package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/chargewise/chargewise/core/model"
)

func TestHaversine(t *testing.T) {
	a := model.Coordinate{Lat: 48.8566, Lng: 2.3522}  // Paris
	b := model.Coordinate{Lat: 45.7640, Lng: 4.8357}  // Lyon
	if d := Haversine(a, a); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
	d := Haversine(a, b)
	if math.Abs(d-392) > 5 {
		t.Fatalf("Paris-Lyon distance = %v km, want ~392", d)
	}
	if Haversine(a, b) != Haversine(b, a) {
		t.Fatal("haversine should be symmetric")
	}
}

func TestExtractFeatures_KeywordTables(t *testing.T) {
	user := model.Coordinate{Lat: 40, Lng: -74}
	stations := []model.Station{
		{Name: "Tesla Supercharger", Address: "I-95 Highway Plaza", Lat: 40, Lng: -74},
		{Name: "Corner Charger", Address: "12 Main St", Lat: 40.1, Lng: -74},
	}
	out := ExtractFeatures(user, stations, 0)
	if len(out) != 2 {
		t.Fatalf("got %d annotated stations", len(out))
	}

	tesla := out[0].Features
	if tesla.Reliability != 95 || tesla.ChargingSpeed != 90 || tesla.Cost != 70 {
		t.Fatalf("tesla name factors = %+v", tesla)
	}
	if tesla.Availability != 85 || tesla.Accessibility != 90 {
		t.Fatalf("highway address factors = %+v", tesla)
	}
	if tesla.DistanceKm != 0 || tesla.TimeMin != 0 {
		t.Fatalf("co-located station should have zero distance, got %+v", tesla)
	}

	generic := out[1].Features
	if generic.Reliability != 70 || generic.ChargingSpeed != 60 || generic.Cost != 50 {
		t.Fatalf("default name factors = %+v", generic)
	}
	if generic.Availability != 80 || generic.Accessibility != 75 {
		t.Fatalf("default address factors = %+v", generic)
	}
	wantTime := generic.DistanceKm / 50 * 60
	if math.Abs(generic.TimeMin-wantTime) > 1e-12 {
		t.Fatalf("time estimate = %v, want %v", generic.TimeMin, wantTime)
	}
}

func TestExtractFeatures_CaseInsensitive(t *testing.T) {
	user := model.Coordinate{}
	out := ExtractFeatures(user, []model.Station{{Name: "EVGO FAST Hub", Address: "Mega MALL"}}, 8)
	f := out[0].Features
	if f.Reliability != 80 || f.ChargingSpeed != 90 || f.Availability != 75 {
		t.Fatalf("case-insensitive factors = %+v", f)
	}
}

func TestExtractFeatures_Cap(t *testing.T) {
	stations := make([]model.Station, 12)
	for i := range stations {
		stations[i] = model.Station{Name: "S", Lat: float64(i)}
	}
	out := ExtractFeatures(model.Coordinate{}, stations, 8)
	if len(out) != 8 {
		t.Fatalf("cap not applied: %d", len(out))
	}
	for i, a := range out {
		if a.Seq != i {
			t.Fatalf("seq[%d] = %d", i, a.Seq)
		}
	}
}

func TestExtractFeatures_Pure(t *testing.T) {
	user := model.Coordinate{Lat: 51.5, Lng: -0.12}
	stations := []model.Station{
		{Name: "ChargePoint City", Address: "Oxford St", Lat: 51.52, Lng: -0.15},
		{Name: "Rapid Hub", Address: "Walmart lot", Lat: 51.4, Lng: -0.2},
	}
	first := ExtractFeatures(user, stations, 8)
	second := ExtractFeatures(user, stations, 8)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("extraction is not deterministic")
	}
}
