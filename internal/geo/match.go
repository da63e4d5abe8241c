package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Mode selects how a registered point is tested against an area.
type Mode string

const (
	// ModeContains matches only points inside (or on the boundary of) a
	// polygon.
	ModeContains Mode = "contains"

	// ModeTolerance additionally matches points within a small distance of
	// a polygon, compensating for registered points being pre-rounded.
	ModeTolerance Mode = "tolerance"
)

// ToleranceFor derives the matching tolerance from the configured coordinate
// precision: half the diagonal of one rounding cell, sqrt(2)*10^-digits
// degrees. A point rounded to that precision can sit at most this far from
// the unrounded location.
func ToleranceFor(digits int) float64 {
	return math.Sqrt2 * math.Pow(10, -float64(digits))
}

// Matcher tests points against multi-polygons. The zero value matches
// nothing; construct it with the configured mode and tolerance.
type Matcher struct {
	Mode      Mode
	Tolerance float64
}

// Matches reports whether the point satisfies the matcher's mode against the
// multi-polygon. An empty multi-polygon never matches. Boundary points count
// as contained.
func (m Matcher) Matches(point orb.Point, mp orb.MultiPolygon) bool {
	if len(mp) == 0 {
		return false
	}

	for _, polygon := range mp {
		for _, ring := range polygon {
			if ringContains(ring, point) {
				return true
			}
		}
	}

	if m.Mode != ModeTolerance {
		return false
	}

	return distanceToBoundary(point, mp) <= m.Tolerance
}

// ringContains implements the even-odd ray-casting rule, with an explicit
// boundary check so points exactly on an edge are treated as inside.
func ringContains(ring orb.Ring, p orb.Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := range ring {
		a, b := ring[i], ring[j]
		if onSegment(p, a, b) {
			return true
		}

		if (a[1] > p[1]) != (b[1] > p[1]) {
			crossX := (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1]) + a[0]
			if p[0] < crossX {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// onSegment reports whether p lies on the segment a-b, within a small
// epsilon to absorb float noise.
func onSegment(p, a, b orb.Point) bool {
	const eps = 1e-12

	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > eps {
		return false
	}

	return p[0] >= math.Min(a[0], b[0])-eps && p[0] <= math.Max(a[0], b[0])+eps &&
		p[1] >= math.Min(a[1], b[1])-eps && p[1] <= math.Max(a[1], b[1])+eps
}

// distanceToBoundary returns the minimum planar distance, in degrees, from
// the point to any ring segment of the multi-polygon.
func distanceToBoundary(p orb.Point, mp orb.MultiPolygon) float64 {
	min := math.Inf(1)
	for _, polygon := range mp {
		for _, ring := range polygon {
			for i := 0; i+1 < len(ring); i++ {
				if d := pointToSegment(p, ring[i], ring[i+1]); d < min {
					min = d
				}
			}
			// Parsed rings are closed, but guard against open input.
			if len(ring) > 1 && ring[0] != ring[len(ring)-1] {
				if d := pointToSegment(p, ring[len(ring)-1], ring[0]); d < min {
					min = d
				}
			}
		}
	}

	return min
}

// pointToSegment returns the distance from p to the nearest point of the
// segment a-b.
func pointToSegment(p, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}
