package zone

import (
	"math"
	"sort"

	"parking-cost/core/geo"
)

// Contains reports whether loc lies inside any of the zone's regions. Point
// zones and zones without regions contain nothing.
func (z *Zone) Contains(loc geo.Location) bool {
	if z.IsPoint() {
		return false
	}
	for _, region := range z.Regions {
		if region.Contains(loc) {
			return true
		}
	}
	return false
}

// Center returns the zone's reference point: the centroid of its only region,
// or the centroid of the polygon formed by its regions' centroids. ok is
// false when no region has any points.
func (z *Zone) Center() (geo.Location, bool) {
	centers := make([]geo.Location, 0, len(z.Regions))
	for _, region := range z.Regions {
		if c, ok := region.Centroid(); ok {
			centers = append(centers, c)
		}
	}
	return geo.Centroid(centers)
}

// Distance returns the metres from loc to the zone's center. This is an
// approximation, not the distance to the nearest edge. Zones without
// geometry are infinitely far away.
func (z *Zone) Distance(loc geo.Location) float64 {
	center, ok := z.Center()
	if !ok {
		return math.Inf(1)
	}
	return geo.Distance(loc, center)
}

// Rank orders zones by relevance to loc: zones containing it first, then the
// rest by ascending distance. The sort is stable and the input is not modified.
func Rank(zones []*Zone, loc geo.Location) []*Zone {
	type ranked struct {
		zone     *Zone
		inside   bool
		distance float64
	}

	items := make([]ranked, len(zones))
	for i, z := range zones {
		items[i] = ranked{zone: z, inside: z.Contains(loc)}
		if !items[i].inside {
			items[i].distance = z.Distance(loc)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].inside != items[j].inside {
			return items[i].inside
		}
		return items[i].distance < items[j].distance
	})

	out := make([]*Zone, len(items))
	for i, item := range items {
		out[i] = item.zone
	}
	return out
}
