package domain

import "strings"

// Shipping method determining the emission factor of a route.
type TransportMode string

const (
	TransportTruck TransportMode = "truck"
	TransportVan   TransportMode = "van"
	TransportAir   TransportMode = "air"
	TransportRail  TransportMode = "rail"
	TransportShip  TransportMode = "ship"
)

// TransportModes lists every supported mode in a fixed order.
var TransportModes = []TransportMode{
	TransportTruck,
	TransportVan,
	TransportAir,
	TransportRail,
	TransportShip,
}

// ParseTransportMode normalizes s and reports whether it names a known mode.
func ParseTransportMode(s string) (TransportMode, bool) {
	m := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TransportModes {
		if m == known {
			return m, true
		}
	}
	return m, false
}

type ProviderType string

const (
	ProviderDistributor  ProviderType = "distributor"
	ProviderManufacturer ProviderType = "manufacturer"
)

// A Provider supplies medical devices to hospitals.
// DevicesSupplied may be empty.
type Provider struct {
	ProviderID      string
	Name            string
	Type            ProviderType
	Address         Address
	Location        Coordinates
	TransportMode   TransportMode
	DevicesSupplied []string
}

// Supplies reports whether the provider lists device (case-insensitive).
func (p *Provider) Supplies(device string) bool {
	for _, d := range p.DevicesSupplied {
		if strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(device)) {
			return true
		}
	}
	return false
}
