package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"parking-cost/core/catalog"
	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/core/zone"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

// The HCL format is meant to be written by hand:
//
//	version = "1.3.0"
//	date    = "2024-05-01T00:00:00Z"
//
//	provider "City Parking" {
//	  id    = 1
//	  color = "#1e88e5"
//
//	  zone "A1" {
//	    id = 101
//
//	    tariff {
//	      days    = ["weekdays"]
//	      start   = "08:00"
//	      end     = "19:00"
//	      periods = { "15m" = 50, "1h" = 180 }
//	    }
//
//	    region {
//	      points = [[59.437, 24.745], [59.438, 24.752], [59.434, 24.753]]
//	      hole {
//	        points = [[59.4365, 24.749], [59.4367, 24.750], [59.4362, 24.750]]
//	      }
//	    }
//	  }
//	}
//
//	group "Old Town" {
//	  id     = 1
//	  reason = "resident-permit"
//	  zones  = ["A1"]
//	}

type hclDataset struct {
	Version   string        `hcl:"version"`
	Date      string        `hcl:"date,optional"`
	Hash      string        `hcl:"hash,optional"`
	Providers []hclProvider `hcl:"provider,block"`
	Groups    []hclGroup    `hcl:"group,block"`
}

type hclProvider struct {
	Name        string    `hcl:"name,label"`
	ID          int       `hcl:"id"`
	Color       string    `hcl:"color,optional"`
	BeaconMajor *int      `hcl:"beacon_major,optional"`
	Zones       []hclZone `hcl:"zone,block"`
}

type hclZone struct {
	Code        string      `hcl:"code,label"`
	ID          int         `hcl:"id"`
	BeaconMinor *int        `hcl:"beacon_minor,optional"`
	Tariffs     []hclTariff `hcl:"tariff,block"`
	Regions     []hclRegion `hcl:"region,block"`
}

type hclTariff struct {
	Days       []string           `hcl:"days"`
	Periods    map[string]float64 `hcl:"periods"`
	Start      *string            `hcl:"start,optional"`
	End        *string            `hcl:"end,optional"`
	FreePeriod *string            `hcl:"free_period,optional"`
	MinPeriod  *string            `hcl:"min_period,optional"`
	MinAmount  *float64           `hcl:"min_amount,optional"`
}

type hclRegion struct {
	Points [][]float64 `hcl:"points"`
	Holes  []hclHole   `hcl:"hole,block"`
}

type hclHole struct {
	Points [][]float64 `hcl:"points"`
}

type hclGroup struct {
	Name          string   `hcl:"name,label"`
	ID            int      `hcl:"id"`
	Reason        string   `hcl:"reason"`
	LocalizedName string   `hcl:"localized_name,optional"`
	Zones         []string `hcl:"zones"`
}

// ParseHCL decodes a dataset written in HCL. Syntax and schema problems fail
// the whole file; a tariff or region with bad values is dropped with a
// warning, the same as in the JSON format.
func ParseHCL(src []byte, filename string) (*catalog.Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	var ds hclDataset
	if diags := gohcl.DecodeBody(file.Body, nil, &ds); diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	var date time.Time
	if ds.Date != "" {
		d, err := time.Parse(time.RFC3339, ds.Date)
		if err != nil {
			return nil, errors.Parsing("date must be RFC 3339", err).WithContext("file", filename)
		}
		date = d.UTC()
	}

	byCode := make(map[string]*zone.Zone)
	providers := make([]*catalog.Provider, 0, len(ds.Providers))
	for _, hp := range ds.Providers {
		p := &catalog.Provider{
			ID:          hp.ID,
			Name:        hp.Name,
			Color:       hp.Color,
			BeaconMajor: hp.BeaconMajor,
		}
		for _, hz := range hp.Zones {
			z := hz.zone()
			p.Zones = append(p.Zones, z)
			byCode[z.Code] = z
		}
		providers = append(providers, p)
	}

	groups := make([]*catalog.Group, 0, len(ds.Groups))
	for _, hg := range ds.Groups {
		g := &catalog.Group{
			ID:            hg.ID,
			Reason:        hg.Reason,
			Name:          hg.Name,
			LocalizedName: hg.LocalizedName,
		}
		for _, code := range hg.Zones {
			if z, ok := byCode[code]; ok {
				g.Zones = append(g.Zones, z)
			} else {
				logging.Warn("group references unknown zone",
					zap.String("group", hg.Name), zap.String("zone", code))
			}
		}
		groups = append(groups, g)
	}

	logging.Debug("parsed HCL dataset",
		zap.String("file", filename),
		zap.String("version", ds.Version),
		zap.Int("providers", len(providers)),
		zap.Int("zones", len(byCode)))

	return catalog.New(ds.Version, date, ds.Hash, providers, groups), nil
}

func (hz hclZone) zone() *zone.Zone {
	z := &zone.Zone{
		ID:          hz.ID,
		Code:        hz.Code,
		BeaconMinor: hz.BeaconMinor,
	}

	for i, ht := range hz.Tariffs {
		rule, err := ht.rule()
		if err != nil {
			logging.Warn("dropping tariff",
				zap.String("zone", hz.Code), zap.Int("index", i), zap.Error(err))
			continue
		}
		z.Tariffs = append(z.Tariffs, rule)
	}

	for i, hr := range hz.Regions {
		region, err := hr.region()
		if err != nil {
			logging.Warn("dropping region",
				zap.String("zone", hz.Code), zap.Int("index", i), zap.Error(err))
			continue
		}
		z.Regions = append(z.Regions, region)
	}

	return z
}

func (ht hclTariff) rule() (*tariff.Rule, error) {
	days, err := parseDays(ht.Days)
	if err != nil {
		return nil, err
	}

	rule := &tariff.Rule{
		Days:       days,
		UnitPrices: make(map[int]float64, len(ht.Periods)),
		MinAmount:  ht.MinAmount,
	}

	for key, price := range ht.Periods {
		unit, err := parseSeconds(key)
		if err != nil {
			return nil, fmt.Errorf("period %q: %w", key, err)
		}
		rule.UnitPrices[unit] = price
	}

	if rule.WindowStart, err = optionalClock(ht.Start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if rule.WindowEnd, err = optionalClock(ht.End); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if rule.FreePeriod, err = optionalSeconds(ht.FreePeriod); err != nil {
		return nil, fmt.Errorf("free_period: %w", err)
	}
	if rule.MinPeriod, err = optionalSeconds(ht.MinPeriod); err != nil {
		return nil, fmt.Errorf("min_period: %w", err)
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func (hr hclRegion) region() (geo.Region, error) {
	points, err := locations(hr.Points)
	if err != nil {
		return geo.Region{}, err
	}
	region := geo.Region{Points: points}

	for _, h := range hr.Holes {
		hole, err := locations(h.Points)
		if err != nil {
			return geo.Region{}, fmt.Errorf("hole: %w", err)
		}
		region.InteriorRegions = append(region.InteriorRegions, geo.Region{Points: hole})
	}
	return region, nil
}

func locations(points [][]float64) ([]geo.Location, error) {
	out := make([]geo.Location, 0, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2", i, len(p))
		}
		loc := geo.Loc(p[0], p[1])
		if !loc.Valid() {
			return nil, fmt.Errorf("point %d out of range: %s", i, loc)
		}
		out = append(out, loc)
	}
	return out, nil
}

var dayNames = map[string]tariff.WeekdayMask{
	"mon":      tariff.Monday,
	"tue":      tariff.Tuesday,
	"wed":      tariff.Wednesday,
	"thu":      tariff.Thursday,
	"fri":      tariff.Friday,
	"sat":      tariff.Saturday,
	"sun":      tariff.Sunday,
	"weekdays": tariff.Weekdays,
	"weekend":  tariff.Weekend,
	"all":      tariff.AllDays,
}

func parseDays(names []string) (tariff.WeekdayMask, error) {
	mask := tariff.Empty
	for _, name := range names {
		m, ok := dayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return tariff.Empty, fmt.Errorf("unknown day %q", name)
		}
		mask = mask.Union(m)
	}
	return mask, nil
}

// parseSeconds accepts a Go duration ("15m", "1h30m") or a bare number of
// seconds.
func parseSeconds(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%s is not a whole number of seconds", s)
	}
	return int(d / time.Second), nil
}

func optionalSeconds(s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	n, err := parseSeconds(*s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// optionalClock parses "HH:MM" into seconds after midnight
func optionalClock(s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return nil, fmt.Errorf("want HH:MM, got %q", *s)
	}
	n := t.Hour()*3600 + t.Minute()*60
	return &n, nil
}

func diagnosticsError(diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		err := errors.Parsing(diag.Summary+": "+diag.Detail, nil)
		if diag.Subject != nil {
			err.WithContext("file", diag.Subject.Filename).WithContext("line", diag.Subject.Start.Line)
		}
		return err
	}
	return errors.Parsing("invalid HCL dataset", diags)
}
