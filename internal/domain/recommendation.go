package domain

// Route between a provider and a hospital as resolved by the routing layer.
type RouteDetails struct {
	DistanceKm       float64
	CarbonEmissionKg float64
	TransportMode    TransportMode
	Polyline         *string
	EstimatedTime    string
	// Estimated is true when the distance is a haversine fallback.
	Estimated bool
}

// DeviceMatch describes how a provider satisfies a requested device.
type DeviceMatch struct {
	RequestedDevice string
	OfferedDevice   string
	IsSubstitute    bool
}

// Represents one scored supplier candidate for a hospital.
// RouteRecommendations are built per request and never persisted.
type RouteRecommendation struct {
	Provider         *Provider
	Hospital         *Hospital
	DistanceKm       float64
	TransportMode    TransportMode
	CarbonEmissionKg float64
	FloodRisk        float64
	WeightedScore    float64
	RoutePolyline    *string
	EstimatedTime    string
	Device           *DeviceMatch
}

// ProviderAnalysis evaluates an existing provider/hospital relationship without ranking.
type ProviderAnalysis struct {
	DistanceKm        float64
	CarbonEmissionKg  float64
	FloodRisk         float64
	ProviderFloodZone string
	HospitalFloodZone string
	ProviderRisk      float64
	HospitalRisk      float64
	TransportMode     TransportMode
	EstimatedTime     string
}
