package ports

import (
	"context"
	"medresilient-service/internal/domain"
)

// Contract for regulatory flood-zone lookups (e.g. FEMA NFHL).
type FloodZoneProvider interface {
	// Return the flood-zone code covering the location, e.g. "AE" or "X".
	LookupZone(ctx context.Context, loc domain.Coordinates) (string, error)
}
