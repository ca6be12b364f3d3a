package ports

import (
	"context"
	"medresilient-service/internal/domain"
)

// Contract for terrain and precipitation observations at a location.
type TerrainProvider interface {
	// Return ground elevation in meters.
	Elevation(ctx context.Context, loc domain.Coordinates) (float64, error)
	// Return total precipitation over the last 30 days in millimeters.
	Precipitation30Day(ctx context.Context, loc domain.Coordinates) (float64, error)
}
