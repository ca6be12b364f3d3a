package ports

import (
	"context"
	"medresilient-service/internal/domain"
)

// Road route between two coordinates as reported by a routing service.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
	// Human readable duration; providers that only return seconds leave it empty.
	DurationText string
	Polyline     string
}

// Contract for retrieving road distance, duration and geometry between two locations.
type RouteProvider interface {
	// Return the best route from origin to destination for the given transport mode.
	GetRoute(ctx context.Context, origin, destination domain.Coordinates, mode domain.TransportMode) (RouteResult, error)
}
