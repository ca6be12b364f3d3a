package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"strings"
	"time"
)

const (
	// Susceptibility reported when terrain data is unavailable.
	neutralSusceptibility = 0.3

	elevationNormMeters     = 100.0
	precipitationNormMM     = 500.0
	elevationRiskWeight     = 0.6
	precipitationRiskWeight = 0.4
)

var errNoProvider = errors.New("provider not configured")

// FloodRiskResolver derives static and dynamic flood risk for a location.
//
// Upstream failures never escape: the static lookup degrades to EstimateFloodZone
// and the dynamic score degrades to a neutral 0.3. Zones and Terrain may be nil,
// in which case the fallbacks are used directly.
type FloodRiskResolver struct {
	Zones   ports.FloodZoneProvider
	Terrain ports.TerrainProvider
	// Bound on each upstream call; zero means no extra bound beyond ctx.
	Timeout time.Duration
}

func NewFloodRiskResolver(zones ports.FloodZoneProvider, terrain ports.TerrainProvider, timeout time.Duration) *FloodRiskResolver {
	return &FloodRiskResolver{Zones: zones, Terrain: terrain, Timeout: timeout}
}

func (f *FloodRiskResolver) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.Timeout > 0 {
		return context.WithTimeout(ctx, f.Timeout)
	}
	return context.WithCancel(ctx)
}

// StaticFloodRisk classifies the location's regulatory flood zone.
func (f *FloodRiskResolver) StaticFloodRisk(ctx context.Context, loc domain.Coordinates) domain.FloodZone {
	zone, err := f.lookupZone(ctx, loc)
	if err != nil {
		obs.Fallback(ctx, "flood.StaticFloodRisk", "geographic_heuristic", err)
		return EstimateFloodZone(loc.Lat, loc.Lon)
	}

	score, description, _ := ZoneScore(zone)
	return domain.FloodZone{
		Zone:        zone,
		RiskLevel:   RiskLevel(score),
		RiskScore:   score,
		Description: description,
	}
}

func (f *FloodRiskResolver) lookupZone(ctx context.Context, loc domain.Coordinates) (zone string, err error) {
	if f.Zones == nil {
		return "", errNoProvider
	}

	defer func() {
		if r := recover(); r != nil {
			zone, err = "", fmt.Errorf("flood zone lookup panicked: %v", r)
		}
	}()

	callCtx, cancel := f.callCtx(ctx)
	defer cancel()

	zone, err = f.Zones.LookupZone(callCtx, loc)
	if err != nil {
		return "", err
	}

	zone = strings.ToUpper(strings.TrimSpace(zone))
	if zone == "" {
		return "", errors.New("flood zone lookup returned an empty zone")
	}
	return zone, nil
}

// DynamicFloodSusceptibility scores terrain and precipitation risk in [0,1].
func (f *FloodRiskResolver) DynamicFloodSusceptibility(ctx context.Context, loc domain.Coordinates) float64 {
	_, score := f.assessTerrain(ctx, loc)
	return score
}

// TerrainReading returns raw terrain observations alongside the susceptibility score.
func (f *FloodRiskResolver) TerrainReading(ctx context.Context, loc domain.Coordinates) (domain.TerrainReading, float64) {
	return f.assessTerrain(ctx, loc)
}

func (f *FloodRiskResolver) assessTerrain(ctx context.Context, loc domain.Coordinates) (reading domain.TerrainReading, score float64) {
	if f.Terrain == nil {
		return reading, neutralSusceptibility
	}

	defer func() {
		if r := recover(); r != nil {
			obs.Fallback(ctx, "terrain.Assess", "neutral", fmt.Errorf("terrain provider panicked: %v", r))
			reading, score = domain.TerrainReading{}, neutralSusceptibility
		}
	}()

	elevationCtx, cancel := f.callCtx(ctx)
	elevation, err := f.Terrain.Elevation(elevationCtx, loc)
	cancel()
	if err != nil {
		obs.Fallback(ctx, "terrain.Elevation", "neutral", err)
		return reading, neutralSusceptibility
	}
	reading.ElevationM = &elevation

	precipCtx, cancel := f.callCtx(ctx)
	precipitation, err := f.Terrain.Precipitation30Day(precipCtx, loc)
	cancel()
	if err != nil {
		obs.Fallback(ctx, "terrain.Precipitation30Day", "neutral", err)
		return reading, neutralSusceptibility
	}
	reading.Precipitation30dMM = &precipitation

	return reading, SusceptibilityScore(elevation, precipitation)
}

// SusceptibilityScore combines elevation and 30-day precipitation into a [0,1] risk.
// Lower ground and wetter months score higher.
func SusceptibilityScore(elevationM, precipitationMM float64) float64 {
	elevationRisk := math.Max(0, 1-elevationM/elevationNormMeters)
	precipitationRisk := math.Min(1, precipitationMM/precipitationNormMM)
	return clamp01(elevationRiskWeight*elevationRisk + precipitationRiskWeight*precipitationRisk)
}

// Assess resolves both risk signals for loc and fuses them with CombineRiskScore.
func (f *FloodRiskResolver) Assess(ctx context.Context, loc domain.Coordinates) domain.LocationRisk {
	static := f.StaticFloodRisk(ctx, loc)
	reading, susceptibility := f.assessTerrain(ctx, loc)

	return domain.LocationRisk{
		Location:       loc,
		Static:         static,
		Terrain:        reading,
		Susceptibility: susceptibility,
		Combined:       CombineRiskScore(static.RiskScore, susceptibility),
	}
}
