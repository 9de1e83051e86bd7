package geo

import "math"

// Region is one contiguous piece of a zone. A single point is a marker with
// no area; two or more points form a polygon whose interior regions are holes.
type Region struct {
	Points          []Location `json:"points"`
	InteriorRegions []Region   `json:"interiorRegions,omitempty"`
}

// IsPoint reports whether the region is a single marker
func (r Region) IsPoint() bool {
	return len(r.Points) == 1
}

// IsPolygon reports whether the region has an area outline
func (r Region) IsPolygon() bool {
	return len(r.Points) >= 2
}

// Contains reports whether loc lies inside the outline and outside every hole
func (r Region) Contains(loc Location) bool {
	if !r.outlineContains(loc) {
		return false
	}
	for _, hole := range r.InteriorRegions {
		if hole.outlineContains(loc) {
			return false
		}
	}
	return true
}

// outlineContains casts a ray along the meridian through loc and counts
// boundary crossings north of it (even-odd rule). Edges whose longitudes
// differ by more than 180° are assumed to cross the antimeridian and are
// shifted onto the query's side first.
func (r Region) outlineContains(loc Location) bool {
	if !r.IsPolygon() {
		return false
	}

	x := loc.Longitude
	inside := false
	prev := r.Points[len(r.Points)-1]

	for _, p := range r.Points {
		x1, x2 := prev.Longitude, p.Longitude
		if math.Abs(x2-x1) > 180 {
			x1 = wrapTowards(x1, x)
			x2 = wrapTowards(x2, x)
		}

		if (x1 <= x && x2 > x) || (x1 >= x && x2 < x) {
			grad := (p.Latitude - prev.Latitude) / (x2 - x1)
			crossing := prev.Latitude + (x-x1)*grad
			if crossing > loc.Latitude {
				inside = !inside
			}
		}
		prev = p
	}

	return inside
}

// wrapTowards moves lon into the half of the circle the query sits in
func wrapTowards(lon, query float64) float64 {
	if query > 0 {
		for lon < 0 {
			lon += 360
		}
		return lon
	}
	for lon > 0 {
		lon -= 360
	}
	return lon
}

// Centroid returns the region's centre: the point itself for a marker, the
// area centroid for a polygon (vertex average when the area is degenerate).
// ok is false for a region without points.
func (r Region) Centroid() (Location, bool) {
	return centroid(r.Points)
}

// Centroid returns the centre of the polygon formed by the given points
func Centroid(points []Location) (Location, bool) {
	return centroid(points)
}

func centroid(points []Location) (Location, bool) {
	n := len(points)
	if n == 0 {
		return Location{}, false
	}
	if n < 3 {
		return average(points), true
	}

	area := 0.0
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].Longitude*points[j].Latitude - points[j].Longitude*points[i].Latitude
		area += cross
		cx += (points[i].Longitude + points[j].Longitude) * cross
		cy += (points[i].Latitude + points[j].Latitude) * cross
	}
	area /= 2

	if math.Abs(area) < 1e-12 {
		return average(points), true
	}

	f := 1.0 / (6.0 * area)
	return Location{Latitude: cy * f, Longitude: cx * f}, true
}

func average(points []Location) Location {
	var sum Location
	for _, p := range points {
		sum.Latitude += p.Latitude
		sum.Longitude += p.Longitude
	}
	n := float64(len(points))
	return Location{Latitude: sum.Latitude / n, Longitude: sum.Longitude / n}
}
