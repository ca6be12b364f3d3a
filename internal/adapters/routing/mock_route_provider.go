package routing

import (
	"context"
	"fmt"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"sync"
)

type MockRoute struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
	Polyline string
}

// MockRouteProvider serves fixed routes keyed by endpoint pair.
// Unknown pairs and a non-nil Err fail the lookup.
type MockRouteProvider struct {
	m   map[string]ports.RouteResult
	Err error

	mu    sync.Mutex
	calls int
}

func routeKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", from.Lat, from.Lon, to.Lat, to.Lon)
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(routes))
	for _, r := range routes {
		m[routeKey(r.From, r.To)] = ports.RouteResult{
			DistanceMeters:  r.Meters,
			DurationSeconds: r.Seconds,
			Polyline:        r.Polyline,
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinates, mode domain.TransportMode) (ports.RouteResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Err != nil {
		return ports.RouteResult{}, p.Err
	}

	r, ok := p.m[routeKey(origin, destination)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing route %v -> %v", origin, destination)
	}
	return r, nil
}

// Calls returns how many lookups were attempted.
func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
