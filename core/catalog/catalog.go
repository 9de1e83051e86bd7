// Package catalog holds the loaded zone dataset: providers, their zones and
// zone groups. A Catalog is immutable once built; updates replace it whole
// through a Store.
package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"parking-cost/core/zone"
)

// Provider is a parking operator and the zones it runs
type Provider struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	// BeaconMajor identifies the provider's BLE beacons, if it has any
	BeaconMajor *int         `json:"beacon-major,omitempty"`
	Zones       []*zone.Zone `json:"zones"`
}

// Group is a named set of zones, e.g. zones sharing a resident permit
type Group struct {
	ID            int          `json:"id"`
	Reason        string       `json:"reason"`
	Name          string       `json:"name"`
	LocalizedName string       `json:"localized-name,omitempty"`
	Zones         []*zone.Zone `json:"zones"`
}

// Catalog is a versioned snapshot of the zone dataset
type Catalog struct {
	// ID is assigned when the catalog is built and identifies this snapshot
	ID uuid.UUID `json:"id"`

	Version string    `json:"version"`
	Date    time.Time `json:"date"`
	Hash    string    `json:"hash"`

	Providers []*Provider `json:"providers"`
	Groups    []*Group    `json:"groups"`

	once   sync.Once
	sorted []*zone.Zone
	byCode map[string]*zone.Zone
	byID   map[int]*zone.Zone
	owner  map[*zone.Zone]*Provider
}

// New builds a catalog snapshot
func New(version string, date time.Time, hash string, providers []*Provider, groups []*Group) *Catalog {
	return &Catalog{
		ID:        uuid.New(),
		Version:   version,
		Date:      date,
		Hash:      hash,
		Providers: providers,
		Groups:    groups,
	}
}

// Empty returns a catalog without any data, used before a dataset is loaded
func Empty() *Catalog {
	return New("0.0.0", time.Time{}, "", nil, nil)
}

func (c *Catalog) index() {
	c.once.Do(func() {
		c.byCode = make(map[string]*zone.Zone)
		c.byID = make(map[int]*zone.Zone)
		c.owner = make(map[*zone.Zone]*Provider)

		for _, p := range c.Providers {
			for _, z := range p.Zones {
				c.sorted = append(c.sorted, z)
				c.byCode[z.Code] = z
				c.byID[z.ID] = z
				c.owner[z] = p
			}
		}

		SortByCode(c.sorted)
	})
}

// Zones returns every zone of every provider ordered by code
func (c *Catalog) Zones() []*zone.Zone {
	c.index()
	out := make([]*zone.Zone, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// ZoneByCode looks a zone up by its public code
func (c *Catalog) ZoneByCode(code string) (*zone.Zone, bool) {
	c.index()
	z, ok := c.byCode[code]
	return z, ok
}

// ZoneByID looks a zone up by its dataset id
func (c *Catalog) ZoneByID(id int) (*zone.Zone, bool) {
	c.index()
	z, ok := c.byID[id]
	return z, ok
}

// ProviderFor returns the provider operating the zone
func (c *Catalog) ProviderFor(z *zone.Zone) (*Provider, bool) {
	c.index()
	p, ok := c.owner[z]
	return p, ok
}

// IsNewerThan reports whether c carries a later dataset version than other
func (c *Catalog) IsNewerThan(other *Catalog) bool {
	if other == nil {
		return true
	}
	return CompareVersions(c.Version, other.Version) > 0
}

// String summarises the catalog
func (c *Catalog) String() string {
	return fmt.Sprintf("Catalog(version: %s, date: %s, hash: %s, providers: %d, groups: %d)",
		c.Version, c.Date.Format(time.RFC3339), c.Hash, len(c.Providers), len(c.Groups))
}

// SortByCode orders zones by code, comparing digit runs numerically so that
// "A2" sorts before "A10".
func SortByCode(zones []*zone.Zone) {
	col := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(zones, func(i, j int) bool {
		return col.CompareString(zones[i].Code, zones[j].Code) < 0
	})
}
