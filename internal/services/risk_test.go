package services

import (
	"math"
	"testing"
)

func TestCombineRiskScore(t *testing.T) {
	cases := []struct {
		static, dynamic, want float64
	}{
		{0, 0, 0},
		{1, 1, 1},
		{0.8, 0.3, 0.5},
		{0.2, 0.3, 0.26},
		{-5, 2, 0},
		{5, 5, 1},
	}

	for _, c := range cases {
		got := CombineRiskScore(c.static, c.dynamic)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("CombineRiskScore(%v, %v) = %v, want %v", c.static, c.dynamic, got, c.want)
		}
	}
}

func TestCombineRiskScoreAlwaysInUnitInterval(t *testing.T) {
	inputs := []float64{-10, -1, 0, 0.25, 0.5, 1, 3, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, s := range inputs {
		for _, d := range inputs {
			got := CombineRiskScore(s, d)
			if got < 0 || got > 1 || math.IsNaN(got) {
				t.Errorf("CombineRiskScore(%v, %v) = %v, outside [0,1]", s, d, got)
			}
		}
	}
}

func TestRiskLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1, "high"},
		{0.8, "high"},
		{0.79, "moderate-high"},
		{0.6, "moderate-high"},
		{0.59, "moderate"},
		{0.3, "moderate"},
		{0.29, "minimal"},
		{0, "minimal"},
	}

	for _, c := range cases {
		if got := RiskLevel(c.score); got != c.want {
			t.Errorf("RiskLevel(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestZoneScore(t *testing.T) {
	cases := []struct {
		zone      string
		wantScore float64
		wantKnown bool
	}{
		{"AE", 0.8, true},
		{"ae", 0.8, true},
		{"A", 0.6, true},
		{"AO", 0.4, true},
		{"X", 0.2, true},
		{"VE", 0.9, true},
		{"ZZ", 0.5, false},
		{"", 0.5, false},
	}

	for _, c := range cases {
		score, desc, known := ZoneScore(c.zone)
		if score != c.wantScore || known != c.wantKnown {
			t.Errorf("ZoneScore(%q) = (%v, %v), want (%v, %v)", c.zone, score, known, c.wantScore, c.wantKnown)
		}
		if desc == "" {
			t.Errorf("ZoneScore(%q) has empty description", c.zone)
		}
	}
}
