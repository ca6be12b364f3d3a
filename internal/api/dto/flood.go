package dto

import (
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"time"
)

type FloodRiskRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type FloodZoneResponse struct {
	Zone        string  `json:"zone"`
	RiskLevel   string  `json:"risk_level"`
	RiskScore   float64 `json:"risk_score"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// Null observations mean the terrain provider was unavailable.
type TerrainResponse struct {
	FloodSusceptibility  float64  `json:"flood_susceptibility"`
	Precipitation30DayMM *float64 `json:"precipitation_30day_mm"`
	ElevationM           *float64 `json:"elevation_m"`
}

type FloodRiskResponse struct {
	Success           bool              `json:"success"`
	Location          LocationResponse  `json:"location"`
	FEMA              FloodZoneResponse `json:"fema"`
	Terrain           TerrainResponse   `json:"terrain"`
	CombinedRiskScore float64           `json:"combined_risk_score"`
}

func FromFloodZone(z domain.FloodZone) FloodZoneResponse {
	source := "fema_nfhl"
	if z.Estimated {
		source = "estimated"
	}
	return FloodZoneResponse{
		Zone:        z.Zone,
		RiskLevel:   z.RiskLevel,
		RiskScore:   z.RiskScore,
		Description: z.Description,
		Source:      source,
	}
}

func FromLocationRisk(r domain.LocationRisk) FloodRiskResponse {
	return FloodRiskResponse{
		Success:  true,
		Location: LocationResponse{Latitude: r.Location.Lat, Longitude: r.Location.Lon},
		FEMA:     FromFloodZone(r.Static),
		Terrain: TerrainResponse{
			FloodSusceptibility:  Round(r.Susceptibility, 3),
			Precipitation30DayMM: r.Terrain.Precipitation30dMM,
			ElevationM:           r.Terrain.ElevationM,
		},
		CombinedRiskScore: Round(r.Combined, 3),
	}
}

type MarkerRisk struct {
	FloodZone string `json:"flood_zone"`
	RiskLevel string `json:"risk_level"`
}

type HospitalMarker struct {
	HospitalResponse
	MarkerRisk
}

type ProviderMarker struct {
	ProviderResponse
	MarkerRisk
}

type MapDataResponse struct {
	Success   bool             `json:"success"`
	Hospitals []HospitalMarker `json:"hospitals"`
	Providers []ProviderMarker `json:"providers"`
}

type ModeEmissionResponse struct {
	EmissionKg     float64 `json:"emission_kg"`
	EmissionFactor float64 `json:"emission_factor"`
}

type TransportModesResponse struct {
	Success    bool                            `json:"success"`
	DistanceKm float64                         `json:"distance_km"`
	Modes      map[string]ModeEmissionResponse `json:"modes"`
}

type DisasterResponse struct {
	DisasterNumber  int       `json:"disaster_number"`
	State           string    `json:"state"`
	DeclarationType string    `json:"declaration_type"`
	IncidentType    string    `json:"incident_type"`
	Title           string    `json:"title"`
	DeclarationDate time.Time `json:"declaration_date"`
	DesignatedArea  string    `json:"designated_area"`
}

type ListDisastersResponse struct {
	Success   bool               `json:"success"`
	State     string             `json:"state"`
	Count     int                `json:"count"`
	Disasters []DisasterResponse `json:"disasters"`
}

func FromDisaster(d ports.DisasterDeclaration) DisasterResponse {
	return DisasterResponse{
		DisasterNumber:  d.DisasterNumber,
		State:           d.State,
		DeclarationType: d.DeclarationType,
		IncidentType:    d.IncidentType,
		Title:           d.Title,
		DeclarationDate: d.DeclarationDate,
		DesignatedArea:  d.DesignatedArea,
	}
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Records int    `json:"records"`
}

type HealthResponse struct {
	Success        bool   `json:"success"`
	Status         string `json:"status"`
	RouteProvider  string `json:"route_provider"`
	TerrainEnabled bool   `json:"terrain_enabled"`
	Generation     uint64 `json:"dataset_generation"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
