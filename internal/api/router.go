package api

import (
	"medresilient-service/internal/api/handlers"
	"medresilient-service/internal/ports"
	"medresilient-service/internal/services"
	"net/http"
	"time"
)

// Deps carries everything the HTTP surface needs. Handlers stay unaware of concrete adapters.
type Deps struct {
	Data      ports.DatasetRepository
	Reloader  ports.DatasetReloader
	Engine    *services.Recommender
	Risk      *services.FloodRiskResolver
	Disasters ports.DisasterProvider

	UploadDir       string
	UpstreamTimeout time.Duration
	Workers         int

	RouteProviderName string
	TerrainEnabled    bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{
		Data:           d.Data,
		RouteProvider:  d.RouteProviderName,
		TerrainEnabled: d.TerrainEnabled,
	}
	entities := &handlers.EntityHandler{Data: d.Data}
	recs := &handlers.RecommendationHandler{Data: d.Data, Engine: d.Engine}
	flood := &handlers.FloodHandler{Data: d.Data, Risk: d.Risk, Workers: d.Workers}
	disasters := &handlers.DisasterHandler{Provider: d.Disasters, Timeout: d.UpstreamTimeout}
	upload := &handlers.UploadHandler{Reloader: d.Reloader, Dir: d.UploadDir}

	mux.HandleFunc("/api/health", health.Health)
	mux.HandleFunc("/api/hospitals", entities.ListHospitals)
	mux.HandleFunc("/api/hospitals/{id}", entities.GetHospital)
	mux.HandleFunc("/api/providers", entities.ListProviders)
	mux.HandleFunc("/api/providers/{id}", entities.GetProvider)
	mux.HandleFunc("/api/orders", entities.ListOrders)
	mux.HandleFunc("/api/orders/{id}", entities.GetOrder)
	mux.HandleFunc("/api/recommendations", recs.Recommend)
	mux.HandleFunc("/api/analyze-provider", recs.AnalyzeProvider)
	mux.HandleFunc("/api/flood-risk", flood.FloodRisk)
	mux.HandleFunc("/api/mapdata", flood.MapData)
	mux.HandleFunc("/api/transport-modes", handlers.TransportModes)
	mux.HandleFunc("/api/disasters", disasters.List)
	mux.HandleFunc("/api/upload", upload.Upload)

	return loggingMiddleware(recoverMiddleware(mux))
}
