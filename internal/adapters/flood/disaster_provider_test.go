package flood

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenFEMADisasterProviderRecentDeclarations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/DisasterDeclarationsSummaries" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("$filter") != "state eq 'FL'" || q.Get("$top") != "2" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"DisasterDeclarationsSummaries":[
			{"disasterNumber":4834,"state":"FL","declarationType":"DR","incidentType":"Hurricane",
			 "declarationTitle":"HURRICANE MILTON","declarationDate":"2024-10-11T00:00:00.000Z","designatedArea":"Pinellas (County)"},
			{"disasterNumber":4828,"state":"FL","declarationType":"DR","incidentType":"Hurricane",
			 "declarationTitle":"HURRICANE HELENE","declarationDate":"2024-09-28T00:00:00.000Z","designatedArea":"Taylor (County)"}
		]}`))
	}))
	defer srv.Close()

	p := NewOpenFEMADisasterProvider(srv.URL + "/")
	got, err := p.RecentDeclarations(context.Background(), "fl", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d declarations, want 2", len(got))
	}
	if got[0].Title != "HURRICANE MILTON" || got[0].DisasterNumber != 4834 {
		t.Errorf("first declaration = %+v", got[0])
	}
	want := time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)
	if !got[0].DeclarationDate.Equal(want) {
		t.Errorf("DeclarationDate = %v, want %v", got[0].DeclarationDate, want)
	}
}
