package handlers

import (
	"context"
	"medresilient-service/internal/api/dto"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDisasterLimit = 10
	maxDisasterLimit     = 100
)

type DisasterHandler struct {
	// Nil disables the lookup; the endpoint then returns an empty list.
	Provider ports.DisasterProvider
	Timeout  time.Duration
}

// List returns recent disaster declarations for a state. Upstream failure yields an empty list.
func (h *DisasterHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	state := strings.ToUpper(strings.TrimSpace(q.Get("state")))
	if state == "" {
		state = "FL"
	}
	if len(state) != 2 {
		writeError(w, r, http.StatusBadRequest, "state must be a two-letter code")
		return
	}

	limit := defaultDisasterLimit
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxDisasterLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	res := dto.ListDisastersResponse{Success: true, State: state, Disasters: []dto.DisasterResponse{}}

	for _, d := range h.fetch(r.Context(), state, limit) {
		res.Disasters = append(res.Disasters, dto.FromDisaster(d))
	}
	res.Count = len(res.Disasters)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DisasterHandler) fetch(ctx context.Context, state string, limit int) []ports.DisasterDeclaration {
	if h.Provider == nil {
		return nil
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	decls, err := h.Provider.RecentDeclarations(ctx, state, limit)
	if err != nil {
		obs.Fallback(ctx, "disasters.RecentDeclarations", "empty", err)
		return nil
	}
	return decls
}
