package handlers

import (
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/ports"
	"net/http"
)

type HealthHandler struct {
	Data           ports.DatasetRepository
	RouteProvider  string
	TerrainEnabled bool
}

// Health provides a minimal liveness check endpoint.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ds, err := h.Data.Current(r.Context())
	if err != nil {
		writeInternalError(w, r, "health.Current", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Success:        true,
		Status:         "healthy",
		RouteProvider:  h.RouteProvider,
		TerrainEnabled: h.TerrainEnabled,
		Generation:     ds.Generation,
	})
}
