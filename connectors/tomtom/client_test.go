package tomtom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chargewise/chargewise/core/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "k", BaseURL: srv.URL})
}

func TestClient_Geocode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/search/2/geocode/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[{"position":{"lat":40.7,"lon":-74.0},"address":{"freeformAddress":"New York, NY"}}]}`))
	})
	loc, addr, err := c.Geocode(context.Background(), "New York")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if loc.Lat != 40.7 || loc.Lng != -74.0 || addr != "New York, NY" {
		t.Fatalf("got %+v %q", loc, addr)
	}
}

func TestClient_GeocodeNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	if _, _, err := c.Geocode(context.Background(), "Nowhereville"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestClient_NearbyStations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("categorySet") != "7309" {
			t.Errorf("categorySet = %s", q.Get("categorySet"))
		}
		if q.Get("radius") != "25000" {
			t.Errorf("radius = %s", q.Get("radius"))
		}
		_, _ = w.Write([]byte(`{"results":[
			{"position":{"lat":40.9,"lon":-74.0},"poi":{"name":"Far Charger"},"address":{"freeformAddress":"Far St"}},
			{"position":{"lat":40.71,"lon":-74.0},"poi":{},"address":{}}
		]}`))
	})
	stations, err := c.NearbyStations(context.Background(), model.Coordinate{Lat: 40.7, Lng: -74}, 25)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("got %d stations", len(stations))
	}
	// Closest first; missing names and addresses get placeholders.
	if stations[0].Name != "EV Charging Station" || stations[0].Address != "Address not available" {
		t.Fatalf("placeholder handling: %+v", stations[0])
	}
	if stations[1].Name != "Far Charger" {
		t.Fatalf("sort order: %+v", stations)
	}
}

func TestClient_NearbyStationsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	if _, err := c.NearbyStations(context.Background(), model.Coordinate{}, 25); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	if _, _, err := c.Geocode(context.Background(), "x"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
