package routing

import (
	"context"
	"medresilient-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleRouteProviderGetRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/directions/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q.Get("origin") != "25.7907,-80.2108" || q.Get("destination") != "27.9444,-82.4619" {
			t.Errorf("origin/destination = %q / %q", q.Get("origin"), q.Get("destination"))
		}
		if q.Get("key") != "gkey" || q.Get("mode") != "driving" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"legs": [{"distance": {"value": 451000}, "duration": {"value": 15900, "text": "4 hours 25 mins"}}],
				"overview_polyline": {"points": "g_polyline"}
			}]
		}`))
	}))
	defer srv.Close()

	p, err := NewGoogleRouteProvider("gkey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.WithBaseURL(srv.URL)

	r, err := p.GetRoute(context.Background(), miami, tampa, domain.TransportAir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DistanceMeters != 451000 || r.DurationSeconds != 15900 || r.DurationText != "4 hours 25 mins" || r.Polyline != "g_polyline" {
		t.Fatalf("route = %+v", r)
	}
}

func TestGoogleRouteProviderNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","routes":[]}`))
	}))
	defer srv.Close()

	p, _ := NewGoogleRouteProvider("gkey")
	p.WithBaseURL(srv.URL)

	if _, err := p.GetRoute(context.Background(), miami, tampa, domain.TransportTruck); err == nil {
		t.Fatalf("expected error for REQUEST_DENIED")
	}
}
