package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"net/http"
	"strings"
	"time"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService directions API.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
	}, nil
}

// WithBaseURL points the provider at another ORS deployment.
func (o *ORSRouteProvider) WithBaseURL(baseURL string) *ORSRouteProvider {
	o.baseURL = strings.TrimRight(baseURL, "/")
	return o
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// profileFor maps a transport mode to an ORS routing profile.
// Non-road modes are approximated by the road network, like the emission model does.
func profileFor(mode domain.TransportMode) string {
	if mode == domain.TransportTruck {
		return "driving-hgv"
	}
	return "driving-car"
}

func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TransportMode,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, profileFor(mode))

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request: %w", err)
	}

	resp, err := do(o.session, req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteResult{}, errors.New("directions response contained no routes")
	}

	best := dr.Routes[0]

	// ORS returns float metrics; round to nearest integer for domain consistency.
	return ports.RouteResult{
		DistanceMeters:  int(math.Round(best.Summary.Distance)),
		DurationSeconds: int(math.Round(best.Summary.Duration)),
		Polyline:        best.Geometry,
	}, nil
}
