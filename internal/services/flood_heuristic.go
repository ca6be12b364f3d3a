package services

import "medresilient-service/internal/domain"

// EstimateFloodZone classifies a location from latitude/longitude bands.
// It is pure arithmetic and never fails; it stands in for the zone lookup service.
func EstimateFloodZone(lat, lon float64) domain.FloodZone {
	coastal := lat < 25.5 ||
		lat > 30.0 ||
		lon < -86.5 ||
		(lat >= 25.0 && lat <= 28.0 && lon > -80.5)

	lowElevation := lat < 26.0

	switch {
	case coastal && lowElevation:
		return domain.FloodZone{Zone: "AE", RiskLevel: "high", RiskScore: 0.8,
			Description: "High-risk flood zone (coastal, low elevation)", Estimated: true}
	case coastal:
		return domain.FloodZone{Zone: "A", RiskLevel: "moderate-high", RiskScore: 0.6,
			Description: "Moderate to high flood risk (coastal)", Estimated: true}
	case lowElevation:
		return domain.FloodZone{Zone: "AO", RiskLevel: "moderate", RiskScore: 0.4,
			Description: "Moderate flood risk (low elevation)", Estimated: true}
	default:
		return domain.FloodZone{Zone: "X", RiskLevel: "minimal", RiskScore: 0.2,
			Description: "Low flood risk", Estimated: true}
	}
}
