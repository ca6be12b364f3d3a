package services

import (
	"math"
	"strings"
)

const (
	staticRiskWeight  = 0.4
	dynamicRiskWeight = 0.6

	unknownZoneScore = 0.5
)

// CombineRiskScore fuses a location's static flood-zone score and dynamic susceptibility.
// The result is clipped to [0,1]. These weights are independent of the alpha/beta
// used for the final recommendation score.
func CombineRiskScore(staticScore, dynamicScore float64) float64 {
	return clamp01(staticRiskWeight*staticScore + dynamicRiskWeight*dynamicScore)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

// RiskLevel maps a flood-zone score to its label.
func RiskLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "moderate-high"
	case score >= 0.3:
		return "moderate"
	default:
		return "minimal"
	}
}

type zoneInfo struct {
	score       float64
	description string
}

// FEMA flood-zone reference table.
var zoneTable = map[string]zoneInfo{
	"V":   {0.9, "Coastal high hazard area with wave action"},
	"VE":  {0.9, "Coastal high hazard area with wave action and base flood elevations"},
	"AE":  {0.8, "High-risk flood zone with base flood elevations"},
	"A":   {0.6, "High-risk flood zone without base flood elevations"},
	"AH":  {0.7, "High-risk shallow flooding (ponding)"},
	"AR":  {0.7, "High-risk area protected by a decertified levee"},
	"A99": {0.7, "High-risk area protected by a levee under construction"},
	"AO":  {0.4, "Moderate risk shallow flooding (sheet flow)"},
	"B":   {0.3, "Moderate flood hazard"},
	"C":   {0.2, "Minimal flood hazard"},
	"X":   {0.2, "Low flood risk"},
	"D":   {0.5, "Undetermined flood hazard"},
}

// ZoneScore looks up the static risk of a zone code. Unrecognized zones score 0.5.
func ZoneScore(zone string) (score float64, description string, known bool) {
	info, ok := zoneTable[strings.ToUpper(strings.TrimSpace(zone))]
	if !ok {
		return unknownZoneScore, "Unrecognized flood zone", false
	}
	return info.score, info.description, true
}
