package popup

import (
	"strings"

	"github.com/openharvest/partnermap/internal/partner"
)

// directionsBase is the external directions service endpoint. The
// destination is appended as +-separated address components.
const directionsBase = "https://www.google.com/maps/dir/?api=1&destination="

// DirectionsURL builds the navigation deep link for a record, or ""
// when the record has no city or no street address. A destination
// without both would resolve to the wrong place, so the popup omits
// the link instead.
func (ren Renderer) DirectionsURL(rec partner.Record) string {
	if rec.City == "" || rec.Address == "" {
		return ""
	}
	return BuildDirectionsURL(rec.Address, rec.City, ren.Region)
}

// BuildDirectionsURL assembles a directions link from a street address,
// a city, and the fixed region code. Whitespace runs inside each
// component collapse to a single "+", and components are joined the
// same way. Never fails.
func BuildDirectionsURL(address, city, region string) string {
	parts := strings.Fields(address)
	parts = append(parts, strings.Fields(city)...)
	parts = append(parts, strings.Fields(region)...)
	return directionsBase + strings.Join(parts, "+")
}
