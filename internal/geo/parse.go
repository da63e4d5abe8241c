// Package geo implements polygon parsing and point matching for alert areas.
//
// Coordinates are kept in (latitude, longitude) order throughout: an
// orb.Point produced or consumed here stores latitude at index 0 and
// longitude at index 1. All geometry is planar in degree space.
package geo

import (
	"strconv"
	"strings"

	"capwatch/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrMalformedPolygon is returned when an area's polygon strings cannot be
// parsed into usable rings. Callers log and skip the area; it is never fatal.
var ErrMalformedPolygon = errors.New("malformed polygon")

// noDataPair is the sentinel coordinate pair some feeds emit for missing
// vertices. It is dropped from its ring, not treated as a real vertex.
const noDataPair = "-1.0,-1.0"

// ParseAreaPolygons converts an area's polygon strings into a multi-polygon
// of simple one-ring polygons. Each polygon string is a whitespace-separated
// list of "lat,lon" pairs forming a closed ring.
//
// A string without whitespace is a degenerate single-point ring and is
// skipped. A ring that parses but is left with fewer than three vertices, or
// any coordinate that fails numeric conversion, fails the whole area. An
// area whose strings are all skipped yields an empty multi-polygon, which
// matches nothing.
func ParseAreaPolygons(area entity.AlertArea) (orb.MultiPolygon, error) {
	var mp orb.MultiPolygon

	for _, polygon := range area.Polygon {
		if !strings.ContainsAny(polygon, " \t\r\n") {
			continue
		}

		pairs := strings.Fields(polygon)
		ring := make(orb.Ring, 0, len(pairs)+1)

		for _, pair := range pairs {
			if pair == noDataPair {
				continue
			}

			latToken, lonToken, found := strings.Cut(pair, ",")
			if !found {
				return nil, errors.Wrapf(ErrMalformedPolygon, "coordinate pair %q has no comma", pair)
			}

			lat, err := strconv.ParseFloat(latToken, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedPolygon, "invalid latitude %q", latToken)
			}

			lon, err := strconv.ParseFloat(lonToken, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedPolygon, "invalid longitude %q", lonToken)
			}

			ring = append(ring, orb.Point{lat, lon})
		}

		if len(ring) < 3 {
			return nil, errors.Wrap(ErrMalformedPolygon, "ring has fewer than three vertices")
		}

		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}

		mp = append(mp, orb.Polygon{ring})
	}

	return mp, nil
}
