package services

import (
	"medresilient-service/internal/domain"
	"strings"
)

// Acceptable substitutes per device. Lookups are case-insensitive.
var deviceSubstitutes = map[string][]string{
	"single-use electrosurgical scalpel": {"Reusable electrosurgical scalpel"},
	"reusable electrosurgical scalpel":   {"Single-use electrosurgical scalpel"},
	"ventilator":                         {"CPAP"},
	"cpap":                               {"Ventilator"},
}

// Substitutes returns the accepted substitutes for device, excluding device itself.
func Substitutes(device string) []string {
	return deviceSubstitutes[strings.ToLower(strings.TrimSpace(device))]
}

// IsSubstitute reports whether offered is an accepted substitute for original.
// A device is not a substitute for itself.
func IsSubstitute(original, offered string) bool {
	if strings.EqualFold(strings.TrimSpace(original), strings.TrimSpace(offered)) {
		return false
	}
	for _, s := range Substitutes(original) {
		if strings.EqualFold(s, strings.TrimSpace(offered)) {
			return true
		}
	}
	return false
}

// MatchDevice reports how provider satisfies device: directly, through a
// substitute, or not at all. The exact device is preferred over substitutes.
func MatchDevice(provider *domain.Provider, device string) (domain.DeviceMatch, bool) {
	device = strings.TrimSpace(device)
	if device == "" {
		return domain.DeviceMatch{}, false
	}

	if provider.Supplies(device) {
		return domain.DeviceMatch{RequestedDevice: device, OfferedDevice: device}, true
	}

	for _, s := range Substitutes(device) {
		if provider.Supplies(s) {
			return domain.DeviceMatch{RequestedDevice: device, OfferedDevice: s, IsSubstitute: true}, true
		}
	}

	return domain.DeviceMatch{}, false
}
