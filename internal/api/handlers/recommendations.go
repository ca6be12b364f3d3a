package handlers

import (
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/ports"
	"medresilient-service/internal/services"
	"net/http"
	"strings"
)

type RecommendationHandler struct {
	Data   ports.DatasetRepository
	Engine *services.Recommender
}

// Recommend ranks every provider (optionally filtered by device) for one hospital.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hospitalID := strings.TrimSpace(req.HospitalID)
	if hospitalID == "" {
		writeError(w, r, http.StatusBadRequest, "hospital_id is required")
		return
	}
	if req.Alpha != nil && *req.Alpha < 0 {
		writeError(w, r, http.StatusBadRequest, "alpha must not be negative")
		return
	}
	if req.Beta != nil && *req.Beta < 0 {
		writeError(w, r, http.StatusBadRequest, "beta must not be negative")
		return
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must not be negative")
			return
		}
		limit = *req.Limit
	}

	ds, err := h.Data.Current(r.Context())
	if err != nil {
		writeInternalError(w, r, "recommend.Current", err)
		return
	}

	hospital, ok := ds.Hospital(hospitalID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "hospital not found")
		return
	}

	recs := h.Engine.GenerateRecommendations(r.Context(), hospital, ds.Providers, services.RecommendOptions{
		Alpha:  req.Alpha,
		Beta:   req.Beta,
		Limit:  limit,
		Device: strings.TrimSpace(req.Device),
	})

	res := dto.ListRecommendationsResponse{
		Success:         true,
		Hospital:        dto.FromHospital(hospital),
		Count:           len(recs),
		Recommendations: make([]dto.RecommendationResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Recommendations = append(res.Recommendations, dto.FromRecommendation(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// AnalyzeProvider evaluates an existing hospital/provider pairing.
func (h *RecommendationHandler) AnalyzeProvider(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AnalyzeProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hospitalID := strings.TrimSpace(req.HospitalID)
	providerID := strings.TrimSpace(req.ProviderID)
	if hospitalID == "" || providerID == "" {
		writeError(w, r, http.StatusBadRequest, "hospital_id and provider_id are required")
		return
	}

	ds, err := h.Data.Current(r.Context())
	if err != nil {
		writeInternalError(w, r, "analyze.Current", err)
		return
	}

	hospital, hOK := ds.Hospital(hospitalID)
	provider, pOK := ds.Provider(providerID)
	if !hOK || !pOK {
		writeError(w, r, http.StatusNotFound, "hospital or provider not found")
		return
	}

	analysis := h.Engine.AnalyzeCurrentProvider(r.Context(), hospital, provider)

	writeJSON(w, r, http.StatusOK, dto.AnalyzeProviderResponse{
		Success:  true,
		Hospital: dto.FromHospital(hospital),
		Provider: dto.FromProvider(provider),
		Analysis: dto.FromAnalysis(analysis),
	})
}
