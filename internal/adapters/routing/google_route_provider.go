package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GoogleRouteProvider implements RouteProvider using the Google Maps Directions API.
type GoogleRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGoogleRouteProvider(apiKey string) (*GoogleRouteProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api",
	}, nil
}

func (g *GoogleRouteProvider) WithBaseURL(baseURL string) *GoogleRouteProvider {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

type googleDirectionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int    `json:"value"`
				Text  string `json:"text"`
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

func latLng(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func (g *GoogleRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TransportMode,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "google.GetRoute")(&err)

	params := url.Values{}
	params.Set("origin", latLng(origin))
	params.Set("destination", latLng(destination))
	// Freight of every mode is routed over roads.
	params.Set("mode", "driving")
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/directions/json?"+params.Encode(), nil)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := do(g.session, req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if dr.Status != "OK" {
		return ports.RouteResult{}, fmt.Errorf("directions status %s: %s", dr.Status, dr.ErrorMessage)
	}
	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return ports.RouteResult{}, errors.New("directions response contained no legs")
	}

	route := dr.Routes[0]
	leg := route.Legs[0]

	return ports.RouteResult{
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
		DurationText:    leg.Duration.Text,
		Polyline:        route.OverviewPolyline.Points,
	}, nil
}
