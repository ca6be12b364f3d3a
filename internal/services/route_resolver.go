package services

import (
	"context"
	"errors"
	"fmt"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"strings"
	"time"
)

const estimatedDuration = "Estimated"

// RouteResolver obtains road routes from a RouteProvider and falls back to the
// haversine distance when the provider is missing, slow or failing.
type RouteResolver struct {
	Provider ports.RouteProvider
	Timeout  time.Duration
}

func NewRouteResolver(provider ports.RouteProvider, timeout time.Duration) *RouteResolver {
	return &RouteResolver{Provider: provider, Timeout: timeout}
}

// ResolveRoute returns distance, emission, polyline and duration for origin -> destination.
// It never fails outward.
func (r *RouteResolver) ResolveRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TransportMode,
) domain.RouteDetails {
	route, err := r.fetch(ctx, origin, destination, mode)
	if err != nil {
		obs.Fallback(ctx, "route.ResolveRoute", "haversine", err)
		distanceKm := origin.DistanceTo(destination)
		return domain.RouteDetails{
			DistanceKm:       distanceKm,
			CarbonEmissionKg: CarbonEmissionKg(distanceKm, mode),
			TransportMode:    mode,
			EstimatedTime:    estimatedDuration,
			Estimated:        true,
		}
	}

	distanceKm := float64(route.DistanceMeters) / 1000.0

	var polyline *string
	if route.Polyline != "" {
		p := route.Polyline
		polyline = &p
	}

	duration := strings.TrimSpace(route.DurationText)
	if duration == "" {
		duration = FormatDuration(time.Duration(route.DurationSeconds) * time.Second)
	}

	return domain.RouteDetails{
		DistanceKm:       distanceKm,
		CarbonEmissionKg: CarbonEmissionKg(distanceKm, mode),
		TransportMode:    mode,
		Polyline:         polyline,
		EstimatedTime:    duration,
	}
}

func (r *RouteResolver) fetch(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TransportMode,
) (route ports.RouteResult, err error) {
	if r.Provider == nil {
		return ports.RouteResult{}, errNoProvider
	}

	defer func() {
		if rec := recover(); rec != nil {
			route, err = ports.RouteResult{}, fmt.Errorf("route provider panicked: %v", rec)
		}
	}()

	callCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	route, err = r.Provider.GetRoute(callCtx, origin, destination, mode)
	if err != nil {
		return ports.RouteResult{}, err
	}
	if route.DistanceMeters < 0 {
		return ports.RouteResult{}, errors.New("route provider returned a negative distance")
	}

	return route, nil
}

// FormatDuration renders d the way map services do, e.g. "2 hours 41 mins".
func FormatDuration(d time.Duration) string {
	totalMins := int((d + 30*time.Second) / time.Minute)
	if totalMins < 1 {
		return "1 min"
	}

	days := totalMins / (24 * 60)
	hours := (totalMins % (24 * 60)) / 60
	mins := totalMins % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 && days == 0 {
		parts = append(parts, plural(mins, "min"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
