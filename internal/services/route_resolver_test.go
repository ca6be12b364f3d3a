package services

import (
	"context"
	"errors"
	"math"
	"medresilient-service/internal/adapters/routing"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"testing"
	"time"
)

func TestResolveRouteUsesProvider(t *testing.T) {
	p := routing.NewMockRouteProvider([]routing.MockRoute{
		{From: miami, To: tampa, Meters: 450000, Seconds: 9660, Polyline: "enc"},
	})
	r := NewRouteResolver(p, time.Second)

	got := r.ResolveRoute(context.Background(), miami, tampa, domain.TransportTruck)

	if got.DistanceKm != 450 {
		t.Errorf("distance = %v, want 450", got.DistanceKm)
	}
	if math.Abs(got.CarbonEmissionKg-94.5) > 1e-9 {
		t.Errorf("emission = %v, want 94.5", got.CarbonEmissionKg)
	}
	if got.Polyline == nil || *got.Polyline != "enc" {
		t.Errorf("polyline = %v, want enc", got.Polyline)
	}
	if got.EstimatedTime != "2 hours 41 mins" {
		t.Errorf("estimated time = %q", got.EstimatedTime)
	}
	if got.Estimated {
		t.Errorf("provider route marked estimated")
	}
}

func TestResolveRouteFallsBackToHaversine(t *testing.T) {
	p := routing.NewMockRouteProvider(nil)
	p.Err = errors.New("quota exceeded")

	cases := map[string]*RouteResolver{
		"provider error": NewRouteResolver(p, 0),
		"no provider":    NewRouteResolver(nil, 0),
	}

	want := domain.HaversineDistanceKm(miami.Lat, miami.Lon, tampa.Lat, tampa.Lon)
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			got := r.ResolveRoute(context.Background(), miami, tampa, domain.TransportAir)

			if got.DistanceKm != want {
				t.Errorf("distance = %v, want haversine %v", got.DistanceKm, want)
			}
			if got.CarbonEmissionKg != want*1.13 {
				t.Errorf("emission = %v, want %v", got.CarbonEmissionKg, want*1.13)
			}
			if got.Polyline != nil {
				t.Errorf("fallback polyline = %q, want nil", *got.Polyline)
			}
			if got.EstimatedTime != "Estimated" || !got.Estimated {
				t.Errorf("fallback = %+v", got)
			}
		})
	}
}

func TestResolveRouteEmptyPolylineIsNil(t *testing.T) {
	p := routing.NewMockRouteProvider([]routing.MockRoute{
		{From: miami, To: tampa, Meters: 1000, Seconds: 60},
	})
	got := NewRouteResolver(p, 0).ResolveRoute(context.Background(), miami, tampa, domain.TransportVan)

	if got.Polyline != nil {
		t.Fatalf("polyline = %q, want nil", *got.Polyline)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "1 min"},
		{45 * time.Second, "1 min"},
		{60 * time.Second, "1 min"},
		{5 * time.Minute, "5 mins"},
		{time.Hour, "1 hour"},
		{time.Hour + time.Minute, "1 hour 1 min"},
		{9660 * time.Second, "2 hours 41 mins"},
		{26 * time.Hour, "1 day 2 hours"},
		{49*time.Hour + 10*time.Minute, "2 days 1 hour"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

type hungRoutes struct{}

func (hungRoutes) GetRoute(ctx context.Context, origin, destination domain.Coordinates, mode domain.TransportMode) (ports.RouteResult, error) {
	<-ctx.Done()
	return ports.RouteResult{}, ctx.Err()
}

func TestResolveRouteTimesOutHungProvider(t *testing.T) {
	r := NewRouteResolver(hungRoutes{}, 50*time.Millisecond)

	start := time.Now()
	got := r.ResolveRoute(context.Background(), miami, tampa, domain.TransportTruck)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("resolve took %s, want bounded by the call timeout", elapsed)
	}

	want := domain.HaversineDistanceKm(miami.Lat, miami.Lon, tampa.Lat, tampa.Lon)
	if got.DistanceKm != want || !got.Estimated {
		t.Errorf("route = %+v, want haversine estimate %v", got, want)
	}
	if got.Polyline != nil {
		t.Errorf("polyline = %q, want nil", *got.Polyline)
	}
	if got.EstimatedTime != "Estimated" {
		t.Errorf("estimated time = %q", got.EstimatedTime)
	}
}
