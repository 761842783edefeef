package geo

import "github.com/paulmach/orb"

// signedArea computes the shoelace signed area of a closed ring.
// Positive for counterclockwise rings.
func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// findSelfIntersection scans a closed ring for a pair of non-adjacent
// edges that intersect. Returns the edge indices of the first such
// pair. O(n²) over edges, which is fine for boundary-sized rings.
func findSelfIntersection(ring orb.Ring) (int, int, bool) {
	n := len(ring) - 1 // closed ring: n edges
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// Edges i and j are adjacent when they share an endpoint;
			// the first and last edge of a closed ring are adjacent too.
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// segmentsIntersect reports whether segments ab and cd intersect,
// including collinear overlap and endpoint touches.
func segmentsIntersect(a, b, c, d orb.Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(c, d, a):
		return true
	case d2 == 0 && onSegment(c, d, b):
		return true
	case d3 == 0 && onSegment(a, b, c):
		return true
	case d4 == 0 && onSegment(a, b, d):
		return true
	}
	return false
}

// cross computes the z-component of (b-a) × (p-a).
func cross(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// onSegment reports whether p lies within the bounding box of segment
// ab. Callers only use it when p is known collinear with ab.
func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}
