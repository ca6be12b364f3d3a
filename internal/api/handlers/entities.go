package handlers

import (
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"net/http"
	"strings"
)

// EntityHandler serves read-only lookups over the current dataset generation.
type EntityHandler struct {
	Data ports.DatasetRepository
}

func (h *EntityHandler) current(w http.ResponseWriter, r *http.Request) (*domain.Dataset, bool) {
	ds, err := h.Data.Current(r.Context())
	if err != nil {
		writeInternalError(w, r, "dataset.Current", err)
		return nil, false
	}
	return ds, true
}

func (h *EntityHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	res := dto.ListHospitalsResponse{Success: true, Hospitals: make([]dto.HospitalResponse, 0, len(ds.Hospitals))}
	for _, hosp := range ds.Hospitals {
		res.Hospitals = append(res.Hospitals, dto.FromHospital(hosp))
	}
	res.Count = len(res.Hospitals)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntityHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	hosp, found := ds.Hospital(r.PathValue("id"))
	if !found {
		writeError(w, r, http.StatusNotFound, "hospital not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HospitalEnvelope{Success: true, Hospital: dto.FromHospital(hosp)})
}

func (h *EntityHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	res := dto.ListProvidersResponse{Success: true, Providers: make([]dto.ProviderResponse, 0, len(ds.Providers))}
	for _, p := range ds.Providers {
		res.Providers = append(res.Providers, dto.FromProvider(p))
	}
	res.Count = len(res.Providers)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntityHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	p, found := ds.Provider(r.PathValue("id"))
	if !found {
		writeError(w, r, http.StatusNotFound, "provider not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ProviderEnvelope{Success: true, Provider: dto.FromProvider(p)})
}

// ListOrders filters by hospital_id (exact) or, failing that, device_name (substring).
func (h *EntityHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	hospitalID := strings.TrimSpace(q.Get("hospital_id"))
	device := strings.TrimSpace(q.Get("device_name"))

	var orders []*domain.Order
	switch {
	case hospitalID != "":
		orders = ds.OrdersByHospital(hospitalID)
	case device != "":
		orders = ds.OrdersByDevice(device)
	default:
		orders = ds.Orders
	}

	res := dto.ListOrdersResponse{Success: true, Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.FromOrder(o, ds))
	}
	res.Count = len(res.Orders)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntityHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ds, ok := h.current(w, r)
	if !ok {
		return
	}

	o, found := ds.Order(r.PathValue("id"))
	if !found {
		writeError(w, r, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.FromOrder(o, ds)})
}
