package flood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NFHLZoneProvider implements FloodZoneProvider against the FEMA National Flood
// Hazard Layer ArcGIS query endpoint (flood hazard zones layer).
type NFHLZoneProvider struct {
	session  *http.Client
	queryURL string
}

func NewNFHLZoneProvider(queryURL string) *NFHLZoneProvider {
	return &NFHLZoneProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		queryURL: queryURL,
	}
}

type nfhlResponse struct {
	Features []struct {
		Attributes struct {
			FloodZone *string `json:"FLD_ZONE"`
		} `json:"attributes"`
	} `json:"features"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (n *NFHLZoneProvider) LookupZone(ctx context.Context, loc domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "nfhl.LookupZone")(&err)

	params := url.Values{}
	params.Set("geometry", strconv.FormatFloat(loc.Lon, 'f', -1, 64)+","+strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("geometryType", "esriGeometryPoint")
	params.Set("inSR", "4326")
	params.Set("spatialRel", "esriSpatialRelIntersects")
	params.Set("outFields", "FLD_ZONE")
	params.Set("returnGeometry", "false")
	params.Set("f", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.queryURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := do(n.session, req)
	if err != nil {
		return "", fmt.Errorf("nfhl query failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded nfhlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode nfhl response: %w", err)
	}

	// ArcGIS reports query errors with a 200 status.
	if decoded.Error != nil {
		return "", fmt.Errorf("nfhl query error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}

	for _, f := range decoded.Features {
		if f.Attributes.FloodZone == nil {
			continue
		}
		if zone := strings.TrimSpace(*f.Attributes.FloodZone); zone != "" {
			return zone, nil
		}
	}

	return "", errors.New("nfhl response has no flood zone for location")
}
