// Package zone joins tariff rules and regions into parking zones and answers
// the two questions asked of them: what parking costs and where they are.
package zone

import (
	"strings"

	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/core/types"
)

// Zone is a parking zone. Zones are built once when a catalog is loaded and
// must not be modified afterwards; pricing and geometry only read them.
type Zone struct {
	ID      int            `json:"id"`
	Code    string         `json:"code"`
	Tariffs []*tariff.Rule `json:"tariffs"`
	Regions []geo.Region   `json:"regions"`

	// BeaconMinor identifies the zone's BLE beacon, if it has one
	BeaconMinor *int `json:"beacon-minor,omitempty"`
}

// IsPoint reports whether the zone is a single marker without an area
func (z *Zone) IsPoint() bool {
	return len(z.Regions) == 1 && z.Regions[0].IsPoint()
}

// Describe returns one line per tariff rule, or a notice when the zone has no
// price information.
func (z *Zone) Describe(currency types.Currency) string {
	if len(z.Tariffs) == 0 {
		return "No price information"
	}
	lines := make([]string, 0, len(z.Tariffs))
	for _, rule := range z.Tariffs {
		lines = append(lines, tariff.Describe(rule, currency))
	}
	return strings.Join(lines, "\n")
}
