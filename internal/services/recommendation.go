package services

import (
	"cmp"
	"context"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultAlpha = 0.6
	DefaultBeta  = 0.4

	// Emission at which the normalized carbon term saturates.
	emissionNormKg = 500.0

	defaultWorkers = 8
)

// RouteSource resolves route details between two points. It must not fail.
type RouteSource interface {
	ResolveRoute(ctx context.Context, origin, destination domain.Coordinates, mode domain.TransportMode) domain.RouteDetails
}

// RiskSource resolves the fused flood risk of one location. It must not fail.
type RiskSource interface {
	Assess(ctx context.Context, loc domain.Coordinates) domain.LocationRisk
}

// Recommender ranks providers for a hospital by flood risk and transport emissions.
//
// Every candidate is scored independently; candidates are resolved concurrently
// on a bounded worker pool and the output order depends only on the scores and
// the input order.
type Recommender struct {
	Routes RouteSource
	Risk   RiskSource

	Alpha   float64
	Beta    float64
	Workers int
}

func NewRecommender(routes RouteSource, risk RiskSource) *Recommender {
	return &Recommender{
		Routes:  routes,
		Risk:    risk,
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Workers: defaultWorkers,
	}
}

// RecommendOptions tune one recommendation request.
type RecommendOptions struct {
	// Flood-risk weight; nil uses the recommender default.
	Alpha *float64
	// Emission weight; nil uses the recommender default.
	Beta *float64
	// Maximum entries returned; zero or negative means all.
	Limit int
	// Optional device filter; providers supplying neither the device nor a substitute are skipped.
	Device string
}

func (r *Recommender) weights(opts RecommendOptions) (alpha, beta float64) {
	alpha, beta = r.Alpha, r.Beta
	if opts.Alpha != nil {
		alpha = *opts.Alpha
	}
	if opts.Beta != nil {
		beta = *opts.Beta
	}
	return alpha, beta
}

// WeightedScore combines route flood risk and carbon emission; lower is better.
func WeightedScore(floodRisk, carbonEmissionKg, alpha, beta float64) float64 {
	normalizedCarbon := min(carbonEmissionKg/emissionNormKg, 1.0)
	return alpha*floodRisk + beta*normalizedCarbon
}

type candidate struct {
	provider *domain.Provider
	device   *domain.DeviceMatch
}

// GenerateRecommendations scores every provider against hospital and returns them
// sorted ascending by weighted score. Ties keep provider order.
func (r *Recommender) GenerateRecommendations(
	ctx context.Context,
	hospital *domain.Hospital,
	providers []*domain.Provider,
	opts RecommendOptions,
) []domain.RouteRecommendation {
	var err error
	defer obs.Time(ctx, "recommend.GenerateRecommendations")(&err)

	candidates := make([]candidate, 0, len(providers))
	for _, p := range providers {
		if opts.Device == "" {
			candidates = append(candidates, candidate{provider: p})
			continue
		}
		if m, ok := MatchDevice(p, opts.Device); ok {
			candidates = append(candidates, candidate{provider: p, device: &m})
		}
	}

	if len(candidates) == 0 {
		return []domain.RouteRecommendation{}
	}

	alpha, beta := r.weights(opts)

	// The hospital endpoint is shared by every candidate route.
	hospitalRisk := r.Risk.Assess(ctx, hospital.Location)

	recs := make([]domain.RouteRecommendation, len(candidates))

	workers := r.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range candidates {
		g.Go(func() error {
			ev := r.evaluate(ctx, hospital, c.provider, hospitalRisk)
			recs[i] = domain.RouteRecommendation{
				Provider:         c.provider,
				Hospital:         hospital,
				DistanceKm:       ev.route.DistanceKm,
				TransportMode:    ev.route.TransportMode,
				CarbonEmissionKg: ev.route.CarbonEmissionKg,
				FloodRisk:        ev.floodRisk,
				WeightedScore:    WeightedScore(ev.floodRisk, ev.route.CarbonEmissionKg, alpha, beta),
				RoutePolyline:    ev.route.Polyline,
				EstimatedTime:    ev.route.EstimatedTime,
				Device:           c.device,
			}
			return nil
		})
	}
	err = g.Wait()

	slices.SortStableFunc(recs, func(a, b domain.RouteRecommendation) int {
		return cmp.Compare(a.WeightedScore, b.WeightedScore)
	})

	if opts.Limit > 0 && opts.Limit < len(recs) {
		recs = recs[:opts.Limit]
	}

	return recs
}

// BestProvider returns the top recommendation, or false when there are no candidates.
func (r *Recommender) BestProvider(
	ctx context.Context,
	hospital *domain.Hospital,
	providers []*domain.Provider,
	alpha *float64,
	beta *float64,
) (domain.RouteRecommendation, bool) {
	recs := r.GenerateRecommendations(ctx, hospital, providers, RecommendOptions{
		Alpha: alpha,
		Beta:  beta,
		Limit: 1,
	})
	if len(recs) == 0 {
		return domain.RouteRecommendation{}, false
	}
	return recs[0], true
}

// AnalyzeCurrentProvider evaluates an existing provider/hospital pair without scoring.
func (r *Recommender) AnalyzeCurrentProvider(
	ctx context.Context,
	hospital *domain.Hospital,
	provider *domain.Provider,
) domain.ProviderAnalysis {
	hospitalRisk := r.Risk.Assess(ctx, hospital.Location)
	ev := r.evaluate(ctx, hospital, provider, hospitalRisk)

	return domain.ProviderAnalysis{
		DistanceKm:        ev.route.DistanceKm,
		CarbonEmissionKg:  ev.route.CarbonEmissionKg,
		FloodRisk:         ev.floodRisk,
		ProviderFloodZone: ev.providerRisk.Static.Zone,
		HospitalFloodZone: hospitalRisk.Static.Zone,
		ProviderRisk:      ev.providerRisk.Combined,
		HospitalRisk:      hospitalRisk.Combined,
		TransportMode:     provider.TransportMode,
		EstimatedTime:     ev.route.EstimatedTime,
	}
}

type evaluation struct {
	route        domain.RouteDetails
	providerRisk domain.LocationRisk
	floodRisk    float64
}

// evaluate resolves the route and endpoint risks for one provider.
// A route is only as safe as its riskiest endpoint.
func (r *Recommender) evaluate(
	ctx context.Context,
	hospital *domain.Hospital,
	provider *domain.Provider,
	hospitalRisk domain.LocationRisk,
) evaluation {
	route := r.Routes.ResolveRoute(ctx, provider.Location, hospital.Location, provider.TransportMode)
	providerRisk := r.Risk.Assess(ctx, provider.Location)

	return evaluation{
		route:        route,
		providerRisk: providerRisk,
		floodRisk:    max(providerRisk.Combined, hospitalRisk.Combined),
	}
}
