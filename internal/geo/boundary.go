// Package geo derives map geometry from the state boundary polygon:
// its bounding box, the outside mask that covers map area beyond the
// boundary, the view center, and padded maximum-pan bounds.
//
// All coordinates are geographic lon/lat (WGS84). The only error in
// this package is GeometryError, raised for degenerate input.
package geo

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// zeroAreaEpsilon is the signed-area threshold below which a ring is
// treated as degenerate.
const zeroAreaEpsilon = 1e-12

// Boundary is the validated region boundary. Construct via Load or
// NewBoundary; a Boundary that exists is known non-degenerate.
type Boundary struct {
	geom orb.MultiPolygon
}

// Load reads a boundary from a GeoJSON file. The file may contain a
// FeatureCollection, a single Feature, or a bare geometry; all Polygon
// and MultiPolygon geometries found are collected. Degenerate geometry
// yields a GeometryError.
func Load(path string) (*Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	geoms, err := decodeGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewBoundary(geoms)
}

// NewBoundary validates polygon geometry and wraps it as a Boundary.
func NewBoundary(geom orb.MultiPolygon) (*Boundary, error) {
	if len(geom) == 0 {
		return nil, &GeometryError{
			Code:    ErrCodeEmptyBoundary,
			Message: "boundary contains no polygon geometry",
		}
	}
	for pi, poly := range geom {
		for ri, ring := range poly {
			if err := validateRing(ring, pi, ri); err != nil {
				return nil, err
			}
		}
	}
	return &Boundary{geom: geom}, nil
}

// Geometry returns the boundary multipolygon.
func (b *Boundary) Geometry() orb.MultiPolygon {
	return b.geom
}

// Bound returns the boundary's bounding box.
func (b *Boundary) Bound() orb.Bound {
	return b.geom.Bound()
}

// Center returns the center point of the bounding box.
func (b *Boundary) Center() orb.Point {
	return b.geom.Bound().Center()
}

// OutsideMask returns the complementary polygon used to visually mask
// map area outside the boundary: the bounding box buffered outward on
// every side, minus the boundary itself. Because every exterior ring
// lies inside the buffered box, the polygon-with-holes construction is
// a true set difference: the mask fully surrounds the boundary and
// overlaps it with zero area.
//
// Interior rings of the boundary (holes such as lakes) are ignored:
// they are inside the region and the mask only covers what is outside.
func (b *Boundary) OutsideMask(buffer float64) orb.Polygon {
	outer := boundRing(padBound(b.geom.Bound(), buffer, buffer))

	mask := orb.Polygon{outer}
	for _, poly := range b.geom {
		hole := make(orb.Ring, len(poly[0]))
		copy(hole, poly[0])
		if hole.Orientation() != orb.CW {
			hole.Reverse()
		}
		mask = append(mask, hole)
	}
	return mask
}

// PanBounds returns the maximum pan extents: the bounding box padded
// asymmetrically. Longitude padding is larger than latitude padding so
// wide popups near the east/west edges stay visible.
func (b *Boundary) PanBounds(padLon, padLat float64) orb.Bound {
	return padBound(b.geom.Bound(), padLon, padLat)
}

// decodeGeoJSON extracts polygon geometry from GeoJSON bytes.
func decodeGeoJSON(data []byte) (orb.MultiPolygon, error) {
	var geoms []orb.Geometry

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil {
		geoms = append(geoms, f.Geometry)
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		geoms = append(geoms, g.Geometry())
	} else {
		return nil, fmt.Errorf("not a GeoJSON feature collection, feature, or geometry")
	}

	var out orb.MultiPolygon
	for _, g := range geoms {
		switch geom := g.(type) {
		case orb.Polygon:
			out = append(out, geom)
		case orb.MultiPolygon:
			out = append(out, geom...)
		}
	}
	return out, nil
}

// validateRing rejects degenerate rings: unclosed, zero-area, or
// self-intersecting.
func validateRing(ring orb.Ring, polygon, index int) error {
	if len(ring) < 4 || !ring[0].Equal(ring[len(ring)-1]) {
		return &GeometryError{
			Code:    ErrCodeOpenRing,
			Message: fmt.Sprintf("ring with %d points is not closed", len(ring)),
			Polygon: polygon,
			Ring:    index,
		}
	}
	if math.Abs(signedArea(ring)) < zeroAreaEpsilon {
		return &GeometryError{
			Code:    ErrCodeZeroArea,
			Message: "ring has zero area",
			Polygon: polygon,
			Ring:    index,
		}
	}
	if i, j, ok := findSelfIntersection(ring); ok {
		return &GeometryError{
			Code:    ErrCodeSelfIntersection,
			Message: fmt.Sprintf("ring edges %d and %d intersect", i, j),
			Polygon: polygon,
			Ring:    index,
		}
	}
	return nil
}

// padBound expands a bound by the given amounts per axis.
func padBound(b orb.Bound, padLon, padLat float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - padLon, b.Min[1] - padLat},
		Max: orb.Point{b.Max[0] + padLon, b.Max[1] + padLat},
	}
}

// boundRing converts a bound to a closed counterclockwise ring.
func boundRing(b orb.Bound) orb.Ring {
	return orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
}
