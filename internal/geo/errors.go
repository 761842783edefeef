package geo

import (
	"errors"
	"fmt"
)

// GeometryErrorCode categorizes boundary geometry failures.
type GeometryErrorCode string

const (
	// ErrCodeEmptyBoundary indicates no polygon geometry was found.
	ErrCodeEmptyBoundary GeometryErrorCode = "EMPTY_BOUNDARY"

	// ErrCodeOpenRing indicates a ring that is not closed.
	ErrCodeOpenRing GeometryErrorCode = "OPEN_RING"

	// ErrCodeZeroArea indicates a degenerate zero-area ring.
	ErrCodeZeroArea GeometryErrorCode = "ZERO_AREA"

	// ErrCodeSelfIntersection indicates a self-intersecting ring.
	ErrCodeSelfIntersection GeometryErrorCode = "SELF_INTERSECTION"
)

// GeometryError reports degenerate boundary input. It is the only
// error the derivation subsystem surfaces, and it is fatal: a malformed
// boundary invalidates every downstream map render, so the pipeline
// halts with no partial output.
type GeometryError struct {
	Code    GeometryErrorCode
	Message string

	// Polygon and Ring locate the offending ring within the input
	// multipolygon. Ring 0 is the exterior ring.
	Polygon int
	Ring    int
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	if e.Code == ErrCodeEmptyBoundary {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (polygon=%d, ring=%d)", e.Code, e.Message, e.Polygon, e.Ring)
}

// IsGeometryError reports whether err is (or wraps) a GeometryError.
func IsGeometryError(err error) bool {
	var ge *GeometryError
	return errors.As(err, &ge)
}
