package handlers

import (
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"medresilient-service/internal/services"
	"net/http"

	"golang.org/x/sync/errgroup"
)

const defaultMapWorkers = 8

type FloodHandler struct {
	Data ports.DatasetRepository
	Risk *services.FloodRiskResolver
	// Bound on concurrent zone lookups when building map data.
	Workers int
}

// FloodRisk reports static, terrain and combined flood risk for one coordinate.
func (h *FloodHandler) FloodRisk(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.FloodRiskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		writeError(w, r, http.StatusBadRequest, "latitude or longitude out of range")
		return
	}

	risk := h.Risk.Assess(r.Context(), domain.Coordinates{Lon: *req.Longitude, Lat: *req.Latitude})
	writeJSON(w, r, http.StatusOK, dto.FromLocationRisk(risk))
}

// MapData returns every hospital and provider annotated with its static flood zone.
func (h *FloodHandler) MapData(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ds, err := h.Data.Current(r.Context())
	if err != nil {
		writeInternalError(w, r, "mapdata.Current", err)
		return
	}

	ctx := r.Context()
	res := dto.MapDataResponse{
		Success:   true,
		Hospitals: make([]dto.HospitalMarker, len(ds.Hospitals)),
		Providers: make([]dto.ProviderMarker, len(ds.Providers)),
	}

	workers := h.Workers
	if workers <= 0 {
		workers = defaultMapWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, hosp := range ds.Hospitals {
		g.Go(func() error {
			z := h.Risk.StaticFloodRisk(ctx, hosp.Location)
			res.Hospitals[i] = dto.HospitalMarker{
				HospitalResponse: dto.FromHospital(hosp),
				MarkerRisk:       dto.MarkerRisk{FloodZone: z.Zone, RiskLevel: z.RiskLevel},
			}
			return nil
		})
	}
	for i, p := range ds.Providers {
		g.Go(func() error {
			z := h.Risk.StaticFloodRisk(ctx, p.Location)
			res.Providers[i] = dto.ProviderMarker{
				ProviderResponse: dto.FromProvider(p),
				MarkerRisk:       dto.MarkerRisk{FloodZone: z.Zone, RiskLevel: z.RiskLevel},
			}
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, r, http.StatusOK, res)
}
