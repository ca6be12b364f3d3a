package routing

import (
	"context"
	"encoding/json"
	"errors"
	"medresilient-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
)

var (
	miami = domain.Coordinates{Lon: -80.2108, Lat: 25.7907}
	tampa = domain.Coordinates{Lon: -82.4619, Lat: 27.9444}
)

func TestORSRouteProviderGetRoute(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody directionsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":449210.6,"duration":15630.4},"geometry":"abc_polyline"}]}`))
	}))
	defer srv.Close()

	p, err := NewORSRouteProvider("test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.WithBaseURL(srv.URL)

	r, err := p.GetRoute(context.Background(), miami, tampa, domain.TransportTruck)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/directions/driving-hgv" {
		t.Errorf("path = %q, want /v2/directions/driving-hgv", gotPath)
	}
	if gotAuth != "test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotBody.Coordinates) != 2 || gotBody.Coordinates[0][0] != miami.Lon || gotBody.Coordinates[0][1] != miami.Lat {
		t.Errorf("coordinates = %v, want [lon,lat] pairs", gotBody.Coordinates)
	}
	if r.DistanceMeters != 449211 || r.DurationSeconds != 15630 {
		t.Errorf("route = %+v", r)
	}
	if r.Polyline != "abc_polyline" {
		t.Errorf("polyline = %q", r.Polyline)
	}
}

func TestORSRouteProviderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewORSRouteProvider("test-key")
	p.WithBaseURL(srv.URL)

	_, err := p.GetRoute(context.Background(), miami, tampa, domain.TransportVan)
	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("err = %v, want httpStatusError 429", err)
	}
}

func TestORSRouteProviderNoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	p, _ := NewORSRouteProvider("test-key")
	p.WithBaseURL(srv.URL)

	if _, err := p.GetRoute(context.Background(), miami, tampa, domain.TransportVan); err == nil {
		t.Fatalf("expected error for empty routes")
	}
}

func TestNewORSRouteProviderRequiresKey(t *testing.T) {
	if _, err := NewORSRouteProvider("  "); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}
