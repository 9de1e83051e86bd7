// Package api - API types for the zone and price endpoints
package api

import (
	"time"

	"parking-cost/core/geo"
	"parking-cost/core/tariff"
	"parking-cost/core/types"
)

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Zones  int    `json:"zones"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version string      `json:"version"`
	Catalog CatalogInfo `json:"catalog"`
}

// CatalogInfo identifies the loaded dataset
type CatalogInfo struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Date      time.Time `json:"date"`
	Hash      string    `json:"hash"`
	Providers int       `json:"providers"`
	Zones     int       `json:"zones"`
	Groups    int       `json:"groups"`
}

// ZoneSummary is a zone in listings
type ZoneSummary struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Provider    string `json:"provider,omitempty"`
	Point       bool   `json:"point"`
	Description string `json:"description"`
}

// ZoneListResponse is returned by GET /zones
type ZoneListResponse struct {
	Zones []ZoneSummary `json:"zones"`
	Count int           `json:"count"`
}

// ZoneDetail is returned by GET /zones/:code
type ZoneDetail struct {
	ZoneSummary
	Center  *geo.Location `json:"center,omitempty"`
	Tariffs []TariffView  `json:"tariffs"`
	Regions []geo.Region  `json:"regions"`
	Groups  []string      `json:"groups,omitempty"`
}

// TariffView is one tariff rule in display form
type TariffView struct {
	Description string            `json:"description"`
	Days        string            `json:"days"`
	Start       *int              `json:"start,omitempty"`
	End         *int              `json:"end,omitempty"`
	Units       map[string]string `json:"units"`
}

// MoneyView is an amount in both minor units and display form
type MoneyView struct {
	Cents    float64        `json:"cents"`
	Amount   string         `json:"amount"`
	Currency types.Currency `json:"currency"`
	Display  string         `json:"display"`
}

// PriceResponse is returned by GET /zones/:code/price
type PriceResponse struct {
	Zone       string              `json:"zone"`
	From       time.Time           `json:"from"`
	To         time.Time           `json:"to"`
	Until      time.Time           `json:"until"`
	Priced     bool                `json:"priced"`
	Strategy   string              `json:"strategy,omitempty"`
	Cost       *MoneyView          `json:"cost,omitempty"`
	Candidates []StrategyPriceView `json:"candidates,omitempty"`
}

// StrategyPriceView is the total under one billing strategy
type StrategyPriceView struct {
	Strategy tariff.Strategy `json:"strategy"`
	Cost     MoneyView       `json:"cost"`
	Until    time.Time       `json:"until"`
}

// NearbyResponse is returned by GET /zones/nearby
type NearbyResponse struct {
	Location geo.Location `json:"location"`
	Zones    []NearbyZone `json:"zones"`
}

// NearbyZone is a zone ranked against a location. Distance is omitted for
// zones without geometry.
type NearbyZone struct {
	ZoneSummary
	Inside         bool     `json:"inside"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}
