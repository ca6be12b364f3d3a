package domain

import "testing"

func TestParseTransportMode(t *testing.T) {
	cases := []struct {
		in    string
		want  TransportMode
		known bool
	}{
		{"truck", TransportTruck, true},
		{" Air ", TransportAir, true},
		{"RAIL", TransportRail, true},
		{"bicycle", TransportMode("bicycle"), false},
		{"", TransportMode(""), false},
	}

	for _, c := range cases {
		got, ok := ParseTransportMode(c.in)
		if got != c.want || ok != c.known {
			t.Errorf("ParseTransportMode(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.known)
		}
	}
}

func TestProviderSupplies(t *testing.T) {
	p := &Provider{ProviderID: "P001", DevicesSupplied: []string{"Ventilator", "Infusion pump"}}

	if !p.Supplies("ventilator") {
		t.Errorf("expected case-insensitive match for ventilator")
	}
	if p.Supplies("CPAP") {
		t.Errorf("provider should not supply CPAP")
	}

	empty := &Provider{ProviderID: "P002"}
	if empty.Supplies("Ventilator") {
		t.Errorf("provider without devices should not supply anything")
	}
}
