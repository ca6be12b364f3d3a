package flood

import (
	"context"
	"encoding/json"
	"fmt"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// OpenFEMADisasterProvider lists disaster declarations from the OpenFEMA API.
type OpenFEMADisasterProvider struct {
	session *http.Client
	baseURL string
}

func NewOpenFEMADisasterProvider(baseURL string) *OpenFEMADisasterProvider {
	return &OpenFEMADisasterProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type declarationsResponse struct {
	Summaries []struct {
		DisasterNumber   int    `json:"disasterNumber"`
		State            string `json:"state"`
		DeclarationType  string `json:"declarationType"`
		IncidentType     string `json:"incidentType"`
		DeclarationTitle string `json:"declarationTitle"`
		DeclarationDate  string `json:"declarationDate"`
		DesignatedArea   string `json:"designatedArea"`
	} `json:"DisasterDeclarationsSummaries"`
}

func (o *OpenFEMADisasterProvider) RecentDeclarations(
	ctx context.Context,
	state string,
	limit int,
) (_ []ports.DisasterDeclaration, err error) {
	defer obs.Time(ctx, "openfema.RecentDeclarations")(&err)

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("state eq '%s'", strings.ToUpper(state)))
	params.Set("$orderby", "declarationDate desc")
	params.Set("$top", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/DisasterDeclarationsSummaries?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := do(o.session, req)
	if err != nil {
		return nil, fmt.Errorf("openfema request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded declarationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode openfema response: %w", err)
	}

	out := make([]ports.DisasterDeclaration, 0, len(decoded.Summaries))
	for _, s := range decoded.Summaries {
		declared, err := time.Parse(time.RFC3339, s.DeclarationDate)
		if err != nil {
			return nil, fmt.Errorf("parse declaration date %q: %w", s.DeclarationDate, err)
		}
		out = append(out, ports.DisasterDeclaration{
			DisasterNumber:  s.DisasterNumber,
			State:           s.State,
			DeclarationType: s.DeclarationType,
			IncidentType:    s.IncidentType,
			Title:           s.DeclarationTitle,
			DeclarationDate: declared,
			DesignatedArea:  s.DesignatedArea,
		})
	}

	return out, nil
}
