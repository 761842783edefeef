package geo

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareBoundary is an 8x6 counterclockwise box centered on the origin.
func squareBoundary(t *testing.T) *Boundary {
	t.Helper()
	b, err := NewBoundary(orb.MultiPolygon{{{
		{-4, -3}, {4, -3}, {4, 3}, {-4, 3}, {-4, -3},
	}}})
	require.NoError(t, err)
	return b
}

func TestBoundAndCenter(t *testing.T) {
	b := squareBoundary(t)

	bound := b.Bound()
	assert.Equal(t, orb.Point{-4, -3}, bound.Min)
	assert.Equal(t, orb.Point{4, 3}, bound.Max)
	assert.Equal(t, orb.Point{0, 0}, b.Center())
}

func TestOutsideMaskGeometry(t *testing.T) {
	b := squareBoundary(t)

	mask := b.OutsideMask(1)
	require.Len(t, mask, 2)

	outer := mask[0]
	assert.Equal(t, orb.Point{-5, -4}, outer[0])
	assert.Equal(t, orb.CCW, outer.Orientation())
	assert.InDelta(t, 80.0, signedArea(outer), 1e-9)

	hole := mask[1]
	assert.Equal(t, orb.CW, hole.Orientation())
	assert.InDelta(t, -48.0, signedArea(hole), 1e-9)
}

// The mask is a true set difference: its area plus the boundary's area
// equals the area of the buffered bounding box.
func TestOutsideMaskAreaInvariant(t *testing.T) {
	b := squareBoundary(t)

	mask := b.OutsideMask(1)
	maskArea := 0.0
	for _, ring := range mask {
		maskArea += signedArea(ring)
	}

	boundaryArea := 0.0
	for _, poly := range b.Geometry() {
		boundaryArea += math.Abs(signedArea(poly[0]))
	}

	boxArea := signedArea(boundRing(padBound(b.Bound(), 1, 1)))
	assert.InDelta(t, boxArea, maskArea+boundaryArea, 1e-9)
}

func TestOutsideMaskDoesNotMutateBoundary(t *testing.T) {
	b := squareBoundary(t)
	before := b.Geometry()[0][0].Orientation()

	b.OutsideMask(1)

	assert.Equal(t, before, b.Geometry()[0][0].Orientation())
}

func TestOutsideMaskMultipleExteriors(t *testing.T) {
	b, err := NewBoundary(orb.MultiPolygon{
		{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}},
		{{{5, 5}, {7, 5}, {7, 7}, {5, 7}, {5, 5}}},
	})
	require.NoError(t, err)

	mask := b.OutsideMask(0.5)
	require.Len(t, mask, 3)
	assert.Equal(t, orb.CCW, mask[0].Orientation())
	assert.Equal(t, orb.CW, mask[1].Orientation())
	assert.Equal(t, orb.CW, mask[2].Orientation())
}

func TestPanBounds(t *testing.T) {
	b := squareBoundary(t)

	pan := b.PanBounds(1.5, 0.5)
	assert.Equal(t, orb.Point{-5.5, -3.5}, pan.Min)
	assert.Equal(t, orb.Point{5.5, 3.5}, pan.Max)
}

func TestLoadFeatureCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.geojson")
	data := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"NAME": "Test Region"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-4,-3],[4,-3],[4,3],[-4,3],[-4,-3]]]
			}
		}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{0, 0}, b.Center())
}

func TestLoadBareGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.geojson")
	data := `{
		"type": "MultiPolygon",
		"coordinates": [[[[-4,-3],[4,-3],[4,3],[-4,3],[-4,-3]]]]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, b.Geometry(), 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.geojson"))
	assert.Error(t, err)
	assert.False(t, IsGeometryError(err))
}

func TestLoadRejectsNonPolygonOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.geojson")
	data := `{"type": "Point", "coordinates": [1, 2]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := Load(path)
	require.Error(t, err)

	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeEmptyBoundary, ge.Code)
}

func TestNewBoundaryEmpty(t *testing.T) {
	_, err := NewBoundary(nil)
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeEmptyBoundary, ge.Code)
}

func TestNewBoundaryOpenRing(t *testing.T) {
	_, err := NewBoundary(orb.MultiPolygon{{{
		{0, 0}, {4, 0}, {4, 4}, {0, 4},
	}}})
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeOpenRing, ge.Code)
	assert.Equal(t, 0, ge.Polygon)
	assert.Equal(t, 0, ge.Ring)
}

func TestNewBoundaryZeroArea(t *testing.T) {
	// Collinear points: closed but degenerate.
	_, err := NewBoundary(orb.MultiPolygon{{{
		{0, 0}, {1, 0}, {2, 0}, {0, 0},
	}}})
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeZeroArea, ge.Code)
}

func TestNewBoundarySelfIntersection(t *testing.T) {
	// Asymmetric bowtie: nonzero area, edges 0-1 and 2-3 cross.
	_, err := NewBoundary(orb.MultiPolygon{{{
		{0, 0}, {5, 0}, {1, 3}, {4, 3}, {0, 0},
	}}})
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeSelfIntersection, ge.Code)
}

func TestNewBoundaryReportsBadRingLocation(t *testing.T) {
	_, err := NewBoundary(orb.MultiPolygon{
		{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}},
		{
			{{10, 10}, {20, 10}, {20, 20}, {10, 20}, {10, 10}},
			{{12, 12}, {13, 12}, {14, 12}, {12, 12}},
		},
	})
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ErrCodeZeroArea, ge.Code)
	assert.Equal(t, 1, ge.Polygon)
	assert.Equal(t, 1, ge.Ring)
}

func TestGeometryErrorMessage(t *testing.T) {
	err := &GeometryError{
		Code:    ErrCodeOpenRing,
		Message: "ring with 4 points is not closed",
		Polygon: 2,
		Ring:    1,
	}
	assert.Equal(t, "OPEN_RING: ring with 4 points is not closed (polygon=2, ring=1)", err.Error())
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d orb.Point
		want       bool
	}{
		{"crossing", orb.Point{0, 0}, orb.Point{4, 4}, orb.Point{0, 4}, orb.Point{4, 0}, true},
		{"disjoint", orb.Point{0, 0}, orb.Point{1, 1}, orb.Point{2, 2}, orb.Point{3, 3}, false},
		{"parallel", orb.Point{0, 0}, orb.Point{4, 0}, orb.Point{0, 1}, orb.Point{4, 1}, false},
		{"endpoint touch", orb.Point{0, 0}, orb.Point{2, 2}, orb.Point{2, 2}, orb.Point{4, 0}, true},
		{"collinear overlap", orb.Point{0, 0}, orb.Point{3, 0}, orb.Point{2, 0}, orb.Point{5, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentsIntersect(tt.a, tt.b, tt.c, tt.d))
		})
	}
}
