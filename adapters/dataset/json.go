package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"parking-cost/core/catalog"
	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/core/zone"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

type object map[string]json.RawMessage

// field decodes obj[key] into T. Missing keys and values of the wrong type
// both report false.
func field[T any](obj object, key string) (T, bool) {
	var v T
	raw, ok := obj[key]
	if !ok || string(raw) == "null" {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

func optional[T any](obj object, key string) *T {
	v, ok := field[T](obj, key)
	if !ok {
		return nil
	}
	return &v
}

// ParseJSON decodes a dataset in the published JSON format:
//
//	{"version": "1.2.0", "date": 1714521600, "hash": "...",
//	 "data": {"providers": [...], "zones": [...], "groups": [...]}}
//
// Malformed zones, regions, tariffs, providers and groups are dropped; only
// a malformed envelope fails the whole dataset.
func ParseJSON(data []byte) (*catalog.Catalog, error) {
	var top object
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Parsing("dataset is not a JSON object", err)
	}

	version, ok := field[string](top, "version")
	if !ok {
		return nil, errors.Parsing("dataset has no version", nil)
	}
	date, ok := field[float64](top, "date")
	if !ok {
		return nil, errors.Parsing("dataset has no date", nil)
	}
	hash, ok := field[string](top, "hash")
	if !ok {
		return nil, errors.Parsing("dataset has no hash", nil)
	}

	body, ok := field[object](top, "data")
	if !ok {
		return nil, errors.Parsing("dataset has no data section", nil)
	}
	rawProviders, ok := field[[]object](body, "providers")
	if !ok {
		return nil, errors.Parsing("dataset has no providers", nil)
	}
	rawZones, ok := field[[]object](body, "zones")
	if !ok {
		return nil, errors.Parsing("dataset has no zones", nil)
	}

	byProvider := make(map[int][]*zone.Zone)
	var all []*zone.Zone
	skipped := 0
	for _, raw := range rawZones {
		z, provider, ok := parseZone(raw)
		if !ok {
			skipped++
			continue
		}
		byProvider[provider] = append(byProvider[provider], z)
		all = append(all, z)
	}
	if skipped > 0 {
		logging.Warn("skipped malformed zones", zap.Int("count", skipped))
	}

	var providers []*catalog.Provider
	for _, raw := range rawProviders {
		if p, ok := parseProvider(raw, byProvider); ok {
			providers = append(providers, p)
		}
	}

	var groups []*catalog.Group
	if rawGroups, ok := field[[]object](body, "groups"); ok {
		for _, raw := range rawGroups {
			if g, ok := parseGroup(raw, all); ok {
				groups = append(groups, g)
			}
		}
	}

	sec, frac := math.Modf(date)
	stamp := time.Unix(int64(sec), int64(frac*1e9)).UTC()

	c := catalog.New(version, stamp, hash, providers, groups)
	logging.Debug("parsed JSON dataset",
		zap.String("version", version),
		zap.Int("providers", len(providers)),
		zap.Int("zones", len(all)),
		zap.Int("groups", len(groups)))
	return c, nil
}

func parseProvider(obj object, zones map[int][]*zone.Zone) (*catalog.Provider, bool) {
	id, ok := field[int](obj, "id")
	if !ok {
		return nil, false
	}
	name, ok := field[string](obj, "name")
	if !ok {
		return nil, false
	}
	color, ok := field[string](obj, "color")
	if !ok {
		return nil, false
	}

	return &catalog.Provider{
		ID:          id,
		Name:        name,
		Color:       color,
		BeaconMajor: optional[int](obj, "beacon-major"),
		Zones:       zones[id],
	}, true
}

// parseZone also returns the id of the provider the zone belongs to
// (0 when absent).
func parseZone(obj object) (*zone.Zone, int, bool) {
	id, ok := field[int](obj, "id")
	if !ok {
		return nil, 0, false
	}
	code, ok := field[string](obj, "code")
	if !ok {
		return nil, 0, false
	}
	provider, _ := field[int](obj, "provider")

	var regions []geo.Region
	if many, ok := field[[]object](obj, "regions"); ok {
		for _, r := range many {
			if region, ok := parseRegion(r); ok {
				regions = append(regions, region)
			}
		}
	} else if one, ok := field[object](obj, "regions"); ok {
		if region, ok := parseRegion(one); ok {
			regions = append(regions, region)
		}
	} else {
		return nil, 0, false
	}

	var tariffs []*tariff.Rule
	if raw, ok := field[[]object](obj, "tariffs"); ok {
		for _, t := range raw {
			if rule, ok := parseTariff(t); ok {
				tariffs = append(tariffs, rule)
			}
		}
	}

	return &zone.Zone{
		ID:          id,
		Code:        code,
		Tariffs:     tariffs,
		Regions:     regions,
		BeaconMinor: optional[int](obj, "beacon-minor"),
	}, provider, true
}

func parseTariff(obj object) (*tariff.Rule, bool) {
	days, ok := field[int](obj, "days")
	if !ok {
		return nil, false
	}
	periods, ok := field[map[string]float64](obj, "periods")
	if !ok {
		return nil, false
	}

	prices := make(map[int]float64, len(periods))
	for key, price := range periods {
		unit, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}
		prices[unit] = price
	}

	rule := &tariff.Rule{
		Days:        tariff.WeekdayMask(days & int(tariff.AllDays)),
		UnitPrices:  prices,
		WindowStart: optional[int](obj, "start"),
		WindowEnd:   optional[int](obj, "end"),
		FreePeriod:  optional[int](obj, "free-period"),
		MinPeriod:   optional[int](obj, "min-period"),
		MinAmount:   optional[float64](obj, "min-amount"),
	}
	if err := rule.Validate(); err != nil {
		logging.Debug("dropping tariff", zap.Error(err))
		return nil, false
	}
	return rule, true
}

func parseRegion(obj object) (geo.Region, bool) {
	points, ok := field[[][]float64](obj, "points")
	if !ok {
		return geo.Region{}, false
	}

	region := geo.Region{Points: make([]geo.Location, 0, len(points))}
	for _, p := range points {
		if len(p) != 2 {
			return geo.Region{}, false
		}
		region.Points = append(region.Points, geo.Loc(p[0], p[1]))
	}

	if holes, ok := field[[]object](obj, "interiorRegions"); ok {
		for _, h := range holes {
			if hole, ok := parseRegion(h); ok {
				region.InteriorRegions = append(region.InteriorRegions, hole)
			}
		}
	}
	return region, true
}

func parseGroup(obj object, zones []*zone.Zone) (*catalog.Group, bool) {
	id, ok := field[int](obj, "id")
	if !ok {
		return nil, false
	}
	reason, ok := field[string](obj, "reason")
	if !ok {
		return nil, false
	}
	name, ok := field[string](obj, "name")
	if !ok {
		return nil, false
	}
	ids, ok := field[[]int](obj, "zones")
	if !ok {
		return nil, false
	}

	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	g := &catalog.Group{ID: id, Reason: reason, Name: name}
	if localized, ok := field[string](obj, "localized-name"); ok {
		g.LocalizedName = localized
	}
	for _, z := range zones {
		if wanted[z.ID] {
			g.Zones = append(g.Zones, z)
		}
	}
	return g, true
}
