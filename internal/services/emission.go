package services

import (
	"medresilient-service/internal/domain"
	"strings"
)

// Emission factors in kg CO2 per km.
var EmissionFactors = map[domain.TransportMode]float64{
	domain.TransportTruck: 0.21,
	domain.TransportVan:   0.15,
	domain.TransportAir:   1.13,
	domain.TransportRail:  0.03,
	domain.TransportShip:  0.01,
}

// EmissionFactor returns the factor for mode. Unknown modes use the truck factor.
func EmissionFactor(mode domain.TransportMode) float64 {
	if f, ok := EmissionFactors[domain.TransportMode(strings.ToLower(strings.TrimSpace(string(mode))))]; ok {
		return f
	}
	return EmissionFactors[domain.TransportTruck]
}

// CarbonEmissionKg returns the CO2 mass emitted moving goods distanceKm by mode.
// distanceKm is expected to be non-negative.
func CarbonEmissionKg(distanceKm float64, mode domain.TransportMode) float64 {
	return distanceKm * EmissionFactor(mode)
}

type ModeEmission struct {
	EmissionKg     float64
	EmissionFactor float64
}

// CompareTransportModes reports hypothetical emissions for every mode over distanceKm.
func CompareTransportModes(distanceKm float64) map[domain.TransportMode]ModeEmission {
	out := make(map[domain.TransportMode]ModeEmission, len(EmissionFactors))
	for _, mode := range domain.TransportModes {
		f := EmissionFactors[mode]
		out[mode] = ModeEmission{
			EmissionKg:     distanceKm * f,
			EmissionFactor: f,
		}
	}
	return out
}
