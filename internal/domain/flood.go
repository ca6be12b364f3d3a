package domain

// Static flood-zone classification of a location.
type FloodZone struct {
	Zone        string
	RiskLevel   string
	RiskScore   float64
	Description string
	// Estimated is true when the classification came from the geographic heuristic.
	Estimated bool
}

// Terrain observations behind the dynamic susceptibility score.
// Nil fields mean the terrain provider could not supply the value.
type TerrainReading struct {
	ElevationM         *float64
	Precipitation30dMM *float64
}

// LocationRisk is the fused static and dynamic flood risk of one location.
type LocationRisk struct {
	Location       Coordinates
	Static         FloodZone
	Terrain        TerrainReading
	Susceptibility float64
	Combined       float64
}
