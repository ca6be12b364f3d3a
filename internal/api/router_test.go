package api

import (
	"medresilient-service/internal/adapters/repositories"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testRouter() http.Handler {
	ds := domain.NewDataset(1,
		[]*domain.Hospital{{HospitalID: "H001", Name: "Jackson Memorial", Location: domain.Coordinates{Lat: 25.7907, Lon: -80.2108}}},
		[]*domain.Provider{{ProviderID: "P001", Name: "MedSupply", Location: domain.Coordinates{Lat: 28.5383, Lon: -81.3792}, TransportMode: domain.TransportTruck}},
		nil,
	)
	store := repositories.NewDatasetStore(ds)
	risk := services.NewFloodRiskResolver(nil, nil, 0)

	return NewRouter(Deps{
		Data:              store,
		Reloader:          store,
		Engine:            services.NewRecommender(services.NewRouteResolver(nil, 0), risk),
		Risk:              risk,
		UploadDir:         "",
		RouteProviderName: "none",
	})
}

func TestRouterRoutesByPath(t *testing.T) {
	srv := httptest.NewServer(testRouter())
	defer srv.Close()

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals/H001", "", http.StatusOK},
		{http.MethodGet, "/api/hospitals/H404", "", http.StatusNotFound},
		{http.MethodGet, "/api/providers/P001", "", http.StatusOK},
		{http.MethodGet, "/api/orders/O404", "", http.StatusNotFound},
		{http.MethodPost, "/api/recommendations", `{"hospital_id":"H001"}`, http.StatusOK},
		{http.MethodGet, "/api/recommendations", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/transport-modes?distance_km=10", "", http.StatusOK},
		{http.MethodGet, "/api/disasters", "", http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, c := range cases {
		req, err := http.NewRequest(c.method, srv.URL+c.path, strings.NewReader(c.body))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", c.method, c.path, err)
		}
		res.Body.Close()

		if res.StatusCode != c.want {
			t.Errorf("%s %s: status = %d, want %d", c.method, c.path, res.StatusCode, c.want)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := testRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := loggingMiddleware(recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"success":false`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}
