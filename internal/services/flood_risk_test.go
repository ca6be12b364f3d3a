package services

import (
	"context"
	"errors"
	"math"
	"medresilient-service/internal/domain"
	"testing"
	"time"
)

type fakeZones struct {
	zone  string
	err   error
	panic bool
	block bool
}

func (f *fakeZones) LookupZone(ctx context.Context, loc domain.Coordinates) (string, error) {
	if f.panic {
		panic("boom")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.zone, f.err
}

type fakeTerrain struct {
	elevation     float64
	precipitation float64
	elevationErr  error
	precipErr     error
}

func (f *fakeTerrain) Elevation(ctx context.Context, loc domain.Coordinates) (float64, error) {
	return f.elevation, f.elevationErr
}

func (f *fakeTerrain) Precipitation30Day(ctx context.Context, loc domain.Coordinates) (float64, error) {
	return f.precipitation, f.precipErr
}

var (
	miami = domain.Coordinates{Lon: -80.2108, Lat: 25.7907}
	tampa = domain.Coordinates{Lon: -82.4619, Lat: 27.9444}
)

func TestStaticFloodRiskFromProvider(t *testing.T) {
	f := NewFloodRiskResolver(&fakeZones{zone: " a "}, nil, 0)

	z := f.StaticFloodRisk(context.Background(), tampa)
	if z.Zone != "A" || z.RiskScore != 0.6 || z.RiskLevel != "moderate-high" || z.Estimated {
		t.Fatalf("zone = %+v", z)
	}
}

func TestStaticFloodRiskUnknownZoneScoresHalf(t *testing.T) {
	f := NewFloodRiskResolver(&fakeZones{zone: "QQ"}, nil, 0)

	z := f.StaticFloodRisk(context.Background(), tampa)
	if z.Zone != "QQ" || z.RiskScore != 0.5 {
		t.Fatalf("zone = %+v, want QQ scored 0.5", z)
	}
}

func TestStaticFloodRiskFallsBackToHeuristic(t *testing.T) {
	cases := map[string]*FloodRiskResolver{
		"error":       NewFloodRiskResolver(&fakeZones{err: errors.New("503")}, nil, 0),
		"empty zone":  NewFloodRiskResolver(&fakeZones{zone: ""}, nil, 0),
		"panic":       NewFloodRiskResolver(&fakeZones{panic: true}, nil, 0),
		"no provider": NewFloodRiskResolver(nil, nil, 0),
		"timeout":     NewFloodRiskResolver(&fakeZones{block: true}, nil, 10*time.Millisecond),
	}

	want := EstimateFloodZone(miami.Lat, miami.Lon)
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			z := f.StaticFloodRisk(context.Background(), miami)
			if z != want {
				t.Fatalf("zone = %+v, want heuristic %+v", z, want)
			}
		})
	}
}

func TestSusceptibilityScore(t *testing.T) {
	cases := []struct {
		elevation, precipitation, want float64
	}{
		{0, 0, 0.6},
		{0, 500, 1},
		{100, 0, 0},
		{250, 1000, 0.4},
		{50, 250, 0.5},
		{-10, 0, 0.66},
		{-100, 500, 1},
	}

	for _, c := range cases {
		got := SusceptibilityScore(c.elevation, c.precipitation)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("SusceptibilityScore(%v, %v) = %v, want %v", c.elevation, c.precipitation, got, c.want)
		}
	}
}

func TestDynamicFloodSusceptibilityFallsBackToNeutral(t *testing.T) {
	cases := map[string]*FloodRiskResolver{
		"no provider":   NewFloodRiskResolver(nil, nil, 0),
		"elevation err": NewFloodRiskResolver(nil, &fakeTerrain{elevationErr: errors.New("down")}, 0),
		"precip err":    NewFloodRiskResolver(nil, &fakeTerrain{precipErr: errors.New("down")}, 0),
	}

	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			if got := f.DynamicFloodSusceptibility(context.Background(), miami); got != 0.3 {
				t.Fatalf("susceptibility = %v, want 0.3", got)
			}
		})
	}
}

func TestTerrainReadingKeepsPartialObservations(t *testing.T) {
	f := NewFloodRiskResolver(nil, &fakeTerrain{elevation: 3, precipErr: errors.New("down")}, 0)

	reading, score := f.TerrainReading(context.Background(), miami)
	if score != 0.3 {
		t.Errorf("score = %v, want 0.3", score)
	}
	if reading.ElevationM == nil || *reading.ElevationM != 3 {
		t.Errorf("elevation = %v, want 3", reading.ElevationM)
	}
	if reading.Precipitation30dMM != nil {
		t.Errorf("precipitation = %v, want nil", *reading.Precipitation30dMM)
	}
}

func TestAssessCombinesSignals(t *testing.T) {
	f := NewFloodRiskResolver(&fakeZones{zone: "AE"}, &fakeTerrain{elevation: 50, precipitation: 250}, time.Second)

	r := f.Assess(context.Background(), miami)

	if r.Static.Zone != "AE" || math.Abs(r.Susceptibility-0.5) > 1e-9 {
		t.Fatalf("risk = %+v", r)
	}
	want := CombineRiskScore(0.8, 0.5)
	if math.Abs(r.Combined-want) > 1e-9 {
		t.Fatalf("combined = %v, want %v", r.Combined, want)
	}
}

func TestAssessWithoutAnyProviders(t *testing.T) {
	f := NewFloodRiskResolver(nil, nil, 0)

	r := f.Assess(context.Background(), tampa)

	// X (0.2) with neutral terrain (0.3)
	if math.Abs(r.Combined-0.26) > 1e-9 {
		t.Fatalf("combined = %v, want 0.26", r.Combined)
	}
}

// slowTerrain answers each call after delay, or never when block is set.
type slowTerrain struct {
	delay time.Duration
	block bool
}

func (s *slowTerrain) wait(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *slowTerrain) Elevation(ctx context.Context, loc domain.Coordinates) (float64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	return 50, nil
}

func (s *slowTerrain) Precipitation30Day(ctx context.Context, loc domain.Coordinates) (float64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	return 250, nil
}

func TestAssessTimesOutHungUpstreams(t *testing.T) {
	f := NewFloodRiskResolver(&fakeZones{block: true}, &slowTerrain{block: true}, 50*time.Millisecond)

	start := time.Now()
	r := f.Assess(context.Background(), miami)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("assess took %s, want bounded by the call timeout", elapsed)
	}

	if want := EstimateFloodZone(miami.Lat, miami.Lon); r.Static != want {
		t.Errorf("static = %+v, want heuristic %+v", r.Static, want)
	}
	if r.Susceptibility != 0.3 {
		t.Errorf("susceptibility = %v, want neutral 0.3", r.Susceptibility)
	}
	if r.Terrain.ElevationM != nil || r.Terrain.Precipitation30dMM != nil {
		t.Errorf("terrain = %+v, want no readings", r.Terrain)
	}
}

func TestTerrainTimeoutAppliesPerCall(t *testing.T) {
	// Each call fits the timeout on its own; together they would not.
	f := NewFloodRiskResolver(nil, &slowTerrain{delay: 40 * time.Millisecond}, 70*time.Millisecond)

	reading, score := f.TerrainReading(context.Background(), miami)

	if reading.ElevationM == nil || reading.Precipitation30dMM == nil {
		t.Fatalf("reading = %+v, want both observations", reading)
	}
	if math.Abs(score-0.5) > 1e-9 {
		t.Fatalf("score = %v, want 0.5", score)
	}
}
