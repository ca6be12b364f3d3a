package terrain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const precipitationWindowDays = 30

// OpenMeteoProvider implements TerrainProvider with the Open-Meteo elevation
// and forecast (past days) APIs.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
}

func NewOpenMeteoProvider(baseURL string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type elevationResponse struct {
	Elevation []float64 `json:"elevation"`
}

type dailyPrecipitationResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func locationParams(loc domain.Coordinates) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
	return params
}

func (o *OpenMeteoProvider) Elevation(ctx context.Context, loc domain.Coordinates) (_ float64, err error) {
	defer obs.Time(ctx, "openmeteo.Elevation")(&err)

	var decoded elevationResponse
	if err := o.getJSON(ctx, "/elevation", locationParams(loc), &decoded); err != nil {
		return 0, fmt.Errorf("elevation: %w", err)
	}

	if len(decoded.Elevation) == 0 {
		return 0, errors.New("elevation: empty response")
	}

	return decoded.Elevation[0], nil
}

func (o *OpenMeteoProvider) Precipitation30Day(ctx context.Context, loc domain.Coordinates) (_ float64, err error) {
	defer obs.Time(ctx, "openmeteo.Precipitation30Day")(&err)

	params := locationParams(loc)
	params.Set("daily", "precipitation_sum")
	params.Set("past_days", strconv.Itoa(precipitationWindowDays))
	params.Set("forecast_days", "1")
	params.Set("timezone", "UTC")

	var decoded dailyPrecipitationResponse
	if err := o.getJSON(ctx, "/forecast", params, &decoded); err != nil {
		return 0, fmt.Errorf("precipitation: %w", err)
	}

	sums := decoded.Daily.PrecipitationSum
	if len(sums) == 0 {
		return 0, errors.New("precipitation: empty daily series")
	}

	// The series ends with today's forecast; only the observed past days count.
	if len(sums) > precipitationWindowDays {
		sums = sums[:precipitationWindowDays]
	}

	total := 0.0
	for _, v := range sums {
		if v != nil {
			total += *v
		}
	}
	return total, nil
}

func (o *OpenMeteoProvider) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
