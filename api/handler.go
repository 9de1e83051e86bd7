package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"parking-cost/core/catalog"
	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/core/types"
	"parking-cost/core/zone"
	"parking-cost/internal/errors"
)

const (
	defaultNearbyLimit = 10
	maxNearbyLimit     = 100
)

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, HealthResponse{
		Status: "ok",
		Zones:  len(s.store.Load().Zones()),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	cat := s.store.Load()
	s.writeJSON(c, http.StatusOK, VersionResponse{
		Version: s.version,
		Catalog: CatalogInfo{
			ID:        cat.ID.String(),
			Version:   cat.Version,
			Date:      cat.Date,
			Hash:      cat.Hash,
			Providers: len(cat.Providers),
			Zones:     len(cat.Zones()),
			Groups:    len(cat.Groups),
		},
	})
}

// handleListZones handles GET /zones
func (s *Server) handleListZones(c *gin.Context) {
	cat := s.store.Load()
	zones := cat.Zones()

	resp := ZoneListResponse{Zones: make([]ZoneSummary, 0, len(zones)), Count: len(zones)}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, s.summary(cat, z))
	}
	s.writeJSON(c, http.StatusOK, resp)
}

// handleGetZone handles GET /zones/:code
func (s *Server) handleGetZone(c *gin.Context) {
	cat := s.store.Load()
	z, ok := cat.ZoneByCode(c.Param("code"))
	if !ok {
		s.writeDomainError(c, errors.NotFound("zone", c.Param("code")))
		return
	}

	detail := ZoneDetail{
		ZoneSummary: s.summary(cat, z),
		Tariffs:     make([]TariffView, 0, len(z.Tariffs)),
		Regions:     z.Regions,
	}
	if center, ok := z.Center(); ok {
		detail.Center = &center
	}
	for _, rule := range z.Tariffs {
		detail.Tariffs = append(detail.Tariffs, s.tariffView(rule))
	}
	for _, g := range cat.Groups {
		for _, member := range g.Zones {
			if member == z {
				detail.Groups = append(detail.Groups, g.Name)
				break
			}
		}
	}

	s.writeJSON(c, http.StatusOK, detail)
}

// handlePrice handles GET /zones/:code/price?from=...&to=...
// Without "to" the price runs until now.
func (s *Server) handlePrice(c *gin.Context) {
	cat := s.store.Load()
	z, ok := cat.ZoneByCode(c.Param("code"))
	if !ok {
		s.writeDomainError(c, errors.NotFound("zone", c.Param("code")))
		return
	}

	from, err := parseTime(c.Query("from"), "from")
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	to := s.now()
	if raw := c.Query("to"); raw != "" {
		if to, err = parseTime(raw, "to"); err != nil {
			s.writeDomainError(c, err)
			return
		}
	}

	candidates, err := zone.EstimateByStrategy(z, from, to, s.calendar)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	best, err := zone.EstimatedPrice(z, from, to, s.calendar)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	resp := PriceResponse{
		Zone:   z.Code,
		From:   from,
		To:     to,
		Until:  best.Until,
		Priced: best.Priced,
	}
	if best.Priced {
		cost := s.money(best.Cost)
		resp.Cost = &cost
		resp.Strategy = best.Strategy.String()
		for _, cand := range candidates {
			if !cand.Priced {
				continue
			}
			resp.Candidates = append(resp.Candidates, StrategyPriceView{
				Strategy: cand.Strategy,
				Cost:     s.money(cand.Cost),
				Until:    cand.Until,
			})
		}
	}

	s.writeJSON(c, http.StatusOK, resp)
}

// handleNearby handles GET /zones/nearby?lat=...&lon=...&limit=...
func (s *Server) handleNearby(c *gin.Context) {
	lat, err := parseFloat(c.Query("lat"), "lat")
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	lon, err := parseFloat(c.Query("lon"), "lon")
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	loc := geo.Loc(lat, lon)
	if !loc.Valid() {
		s.writeDomainError(c, errors.Input("coordinate out of range: "+loc.String()))
		return
	}

	limit := defaultNearbyLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxNearbyLimit {
			s.writeDomainError(c, errors.Newf(errors.TypeInput, "limit must be between 1 and %d", maxNearbyLimit))
			return
		}
		limit = n
	}

	cat := s.store.Load()
	ranked := zone.Rank(cat.Zones(), loc)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resp := NearbyResponse{Location: loc, Zones: make([]NearbyZone, 0, len(ranked))}
	for _, z := range ranked {
		nz := NearbyZone{ZoneSummary: s.summary(cat, z), Inside: z.Contains(loc)}
		if d := z.Distance(loc); !math.IsInf(d, 1) {
			nz.DistanceMeters = &d
		}
		resp.Zones = append(resp.Zones, nz)
	}
	s.writeJSON(c, http.StatusOK, resp)
}

func (s *Server) summary(cat *catalog.Catalog, z *zone.Zone) ZoneSummary {
	sum := ZoneSummary{
		ID:          z.ID,
		Code:        z.Code,
		Point:       z.IsPoint(),
		Description: z.Describe(s.currency),
	}
	if p, ok := cat.ProviderFor(z); ok {
		sum.Provider = p.Name
	}
	return sum
}

func (s *Server) tariffView(rule *tariff.Rule) TariffView {
	view := TariffView{
		Description: tariff.Describe(rule, s.currency),
		Days:        rule.Days.String(),
		Start:       rule.WindowStart,
		End:         rule.WindowEnd,
		Units:       make(map[string]string, len(rule.UnitPrices)),
	}
	for unit, price := range rule.UnitPrices {
		view.Units[strconv.Itoa(unit)] = types.NewMoney(price, s.currency).String()
	}
	return view
}

func (s *Server) money(cents float64) MoneyView {
	m := types.NewMoney(cents, s.currency)
	return MoneyView{
		Cents:    cents,
		Amount:   m.Major().StringFixedBank(2),
		Currency: s.currency,
		Display:  m.String(),
	}
}

func parseTime(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.Input(name + " is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.TypeInput, err, "%s must be RFC 3339", name)
	}
	return t, nil
}

func parseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, errors.Input(name + " is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.TypeInput, err, "%s must be a number", name)
	}
	return f, nil
}
