package dto

import (
	"math"
	"medresilient-service/internal/domain"
)

type RecommendationRequest struct {
	HospitalID string   `json:"hospital_id"`
	Alpha      *float64 `json:"alpha"`
	Beta       *float64 `json:"beta"`
	Limit      *int     `json:"limit"`
	Device     string   `json:"device"`
}

type AnalyzeProviderRequest struct {
	HospitalID string `json:"hospital_id"`
	ProviderID string `json:"provider_id"`
}

// Present only when the request filtered by device.
type DeviceMatchResponse struct {
	RequestedDevice string `json:"requested_device"`
	OfferedDevice   string `json:"offered_device"`
	IsSubstitute    bool   `json:"is_substitute"`
}

type RecommendationResponse struct {
	Provider         ProviderResponse `json:"provider"`
	Hospital         HospitalResponse `json:"hospital"`
	DistanceKm       float64          `json:"distance_km"`
	TransportMode    string           `json:"transport_mode"`
	CarbonEmissionKg float64          `json:"carbon_emission_kg"`
	FloodRisk        float64          `json:"flood_risk"`
	WeightedScore    float64          `json:"weighted_score"`
	RoutePolyline    *string          `json:"route_polyline"`
	EstimatedTime    string           `json:"estimated_time"`
	*DeviceMatchResponse
}

type ListRecommendationsResponse struct {
	Success         bool                     `json:"success"`
	Hospital        HospitalResponse         `json:"hospital"`
	Count           int                      `json:"count"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type AnalysisResponse struct {
	DistanceKm        float64 `json:"distance_km"`
	CarbonEmissionKg  float64 `json:"carbon_emission_kg"`
	FloodRisk         float64 `json:"flood_risk"`
	ProviderFloodZone string  `json:"provider_flood_zone"`
	HospitalFloodZone string  `json:"hospital_flood_zone"`
	ProviderRisk      float64 `json:"provider_risk"`
	HospitalRisk      float64 `json:"hospital_risk"`
	TransportMode     string  `json:"transport_mode"`
	EstimatedTime     string  `json:"estimated_time"`
}

type AnalyzeProviderResponse struct {
	Success  bool             `json:"success"`
	Hospital HospitalResponse `json:"hospital"`
	Provider ProviderResponse `json:"provider"`
	Analysis AnalysisResponse `json:"analysis"`
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func FromRecommendation(r domain.RouteRecommendation) RecommendationResponse {
	res := RecommendationResponse{
		Provider:         FromProvider(r.Provider),
		Hospital:         FromHospital(r.Hospital),
		DistanceKm:       Round(r.DistanceKm, 2),
		TransportMode:    string(r.TransportMode),
		CarbonEmissionKg: Round(r.CarbonEmissionKg, 2),
		FloodRisk:        Round(r.FloodRisk, 3),
		WeightedScore:    Round(r.WeightedScore, 3),
		RoutePolyline:    r.RoutePolyline,
		EstimatedTime:    r.EstimatedTime,
	}
	if r.Device != nil {
		res.DeviceMatchResponse = &DeviceMatchResponse{
			RequestedDevice: r.Device.RequestedDevice,
			OfferedDevice:   r.Device.OfferedDevice,
			IsSubstitute:    r.Device.IsSubstitute,
		}
	}
	return res
}

func FromAnalysis(a domain.ProviderAnalysis) AnalysisResponse {
	return AnalysisResponse{
		DistanceKm:        Round(a.DistanceKm, 2),
		CarbonEmissionKg:  Round(a.CarbonEmissionKg, 2),
		FloodRisk:         Round(a.FloodRisk, 3),
		ProviderFloodZone: a.ProviderFloodZone,
		HospitalFloodZone: a.HospitalFloodZone,
		ProviderRisk:      Round(a.ProviderRisk, 3),
		HospitalRisk:      Round(a.HospitalRisk, 3),
		TransportMode:     string(a.TransportMode),
		EstimatedTime:     a.EstimatedTime,
	}
}
