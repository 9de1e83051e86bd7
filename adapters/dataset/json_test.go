package dataset

import (
	"testing"
	"time"

	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/internal/errors"
)

const sampleJSON = `{
  "version": "1.4.2",
  "date": 1714521600,
  "hash": "f00d",
  "data": {
    "providers": [
      {"id": 1, "name": "City", "color": "#ff0000", "beacon-major": 7},
      {"id": 2, "name": "Harbour", "color": "#00ff00"},
      {"id": 3, "name": "No colour"}
    ],
    "zones": [
      {
        "id": 10, "code": "A10", "provider": 1, "beacon-minor": 3,
        "regions": [{
          "points": [[0, 0], [0, 1], [1, 1], [1, 0]],
          "interiorRegions": [{"points": [[0.4, 0.4], [0.4, 0.6], [0.6, 0.6], [0.6, 0.4]]}]
        }],
        "tariffs": [
          {"days": 31, "periods": {"1800": 50, "3600": 80}, "start": 28800, "end": 72000, "free-period": 900},
          {"days": 96, "periods": {"x": 1}},
          {"days": 96}
        ]
      },
      {
        "id": 2, "code": "A2", "provider": 1,
        "regions": {"points": [[2, 2]]}
      },
      {
        "id": 7, "code": "H1", "provider": 2,
        "regions": [{"points": [[5, 5], [5]]}, {"points": [[6, 6]]}]
      },
      {"id": 8, "code": "NOREGION", "provider": 2},
      {"code": "NOID", "regions": []}
    ],
    "groups": [
      {"id": 1, "reason": "permit", "name": "Centre", "localized-name": "Kesklinn", "zones": [10, 7, 99]},
      {"id": 2, "reason": "permit", "name": "Broken"}
    ]
  }
}`

func TestParseJSON(t *testing.T) {
	c, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	if c.Version != "1.4.2" || c.Hash != "f00d" {
		t.Errorf("header = %s/%s", c.Version, c.Hash)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !c.Date.Equal(want) {
		t.Errorf("date = %v, want %v", c.Date, want)
	}

	if len(c.Providers) != 2 {
		t.Fatalf("providers = %d, want 2 (one lacks a colour)", len(c.Providers))
	}
	if c.Providers[0].BeaconMajor == nil || *c.Providers[0].BeaconMajor != 7 {
		t.Errorf("beacon-major not read")
	}

	zones := c.Zones()
	if len(zones) != 3 {
		t.Fatalf("zones = %d, want 3", len(zones))
	}
	if zones[0].Code != "A2" || zones[1].Code != "A10" {
		t.Errorf("zone order = %s, %s", zones[0].Code, zones[1].Code)
	}
}

func TestParseJSONZoneDetails(t *testing.T) {
	c, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	z, ok := c.ZoneByCode("A10")
	if !ok {
		t.Fatal("A10 missing")
	}
	if z.BeaconMinor == nil || *z.BeaconMinor != 3 {
		t.Errorf("beacon-minor not read")
	}

	if len(z.Tariffs) != 1 {
		t.Fatalf("tariffs = %d, want 1 (two are malformed)", len(z.Tariffs))
	}
	rule := z.Tariffs[0]
	if rule.Days != tariff.Weekdays {
		t.Errorf("days = %v, want Mon - Fri", rule.Days)
	}
	if rule.UnitPrices[1800] != 50 || rule.UnitPrices[3600] != 80 {
		t.Errorf("periods = %v", rule.UnitPrices)
	}
	if rule.WindowStart == nil || *rule.WindowStart != 28800 || rule.WindowEnd == nil || *rule.WindowEnd != 72000 {
		t.Errorf("window not read")
	}
	if rule.FreePeriod == nil || *rule.FreePeriod != 900 {
		t.Errorf("free-period not read")
	}

	if len(z.Regions) != 1 || len(z.Regions[0].InteriorRegions) != 1 {
		t.Fatalf("regions = %+v", z.Regions)
	}
	if z.Contains(geo.Loc(0.5, 0.5)) {
		t.Error("hole should not be contained")
	}
	if !z.Contains(geo.Loc(0.2, 0.2)) {
		t.Error("outline should be contained")
	}

	single, _ := c.ZoneByCode("A2")
	if !single.IsPoint() {
		t.Error("object-valued regions should give a point zone")
	}

	harbour, _ := c.ZoneByCode("H1")
	if len(harbour.Regions) != 1 {
		t.Errorf("H1 regions = %d, want 1 (one has a bad point)", len(harbour.Regions))
	}
	if p, ok := c.ProviderFor(harbour); !ok || p.Name != "Harbour" {
		t.Errorf("H1 provider = %v", p)
	}
}

func TestParseJSONGroups(t *testing.T) {
	c, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	if len(c.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(c.Groups))
	}
	g := c.Groups[0]
	if g.LocalizedName != "Kesklinn" {
		t.Errorf("localized name = %q", g.LocalizedName)
	}
	if len(g.Zones) != 2 {
		t.Errorf("group zones = %d, want 2", len(g.Zones))
	}
}

func TestParseJSONRejectsBadEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"array", `[]`},
		{"no version", `{"date": 1, "hash": "x", "data": {"providers": [], "zones": []}}`},
		{"string date", `{"version": "1", "date": "today", "hash": "x", "data": {"providers": [], "zones": []}}`},
		{"no data", `{"version": "1", "date": 1, "hash": "x"}`},
		{"no zones", `{"version": "1", "date": 1, "hash": "x", "data": {"providers": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.body))
			if !errors.IsType(err, errors.TypeParsing) {
				t.Errorf("ParseJSON() error = %v, want parsing error", err)
			}
		})
	}
}
