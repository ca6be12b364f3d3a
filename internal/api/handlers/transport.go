package handlers

import (
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/services"
	"net/http"
	"strconv"
	"strings"
)

// TransportModes compares emissions of every transport mode over distance_km.
func TransportModes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("distance_km"))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "distance_km is required")
		return
	}
	distance, err := strconv.ParseFloat(raw, 64)
	if err != nil || distance < 0 {
		writeError(w, r, http.StatusBadRequest, "distance_km must be a non-negative number")
		return
	}

	modes := services.CompareTransportModes(distance)

	res := dto.TransportModesResponse{
		Success:    true,
		DistanceKm: distance,
		Modes:      make(map[string]dto.ModeEmissionResponse, len(modes)),
	}
	for mode, e := range modes {
		res.Modes[string(mode)] = dto.ModeEmissionResponse{
			EmissionKg:     dto.Round(e.EmissionKg, 2),
			EmissionFactor: e.EmissionFactor,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
