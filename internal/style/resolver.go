// Package style resolves partner categories to marker presentation
// attributes. Resolution is total: every category, including ones that
// were absent or unrecognized in the source data, maps to a color and
// an icon key.
package style

import (
	"fmt"

	"github.com/openharvest/partnermap/internal/partner"
)

// Resolver maps categories to marker colors and icon keys. Both tables
// key on the same category partition; the fallback (CategoryOther)
// entry always exists, so Color and Icon never fail. Tables are copied
// at construction and never mutated afterwards.
type Resolver struct {
	colors map[partner.Category]string
	icons  map[partner.Category]string
}

// NewResolver builds a Resolver from explicit tables. Both tables must
// cover the full category partition exactly; a missing or extraneous
// entry is a construction error, surfaced at startup rather than as a
// per-record fallback surprise.
func NewResolver(colors, icons map[partner.Category]string) (*Resolver, error) {
	if err := checkPartition("color", colors); err != nil {
		return nil, err
	}
	if err := checkPartition("icon", icons); err != nil {
		return nil, err
	}
	r := &Resolver{
		colors: make(map[partner.Category]string, len(colors)),
		icons:  make(map[partner.Category]string, len(icons)),
	}
	for c, v := range colors {
		r.colors[c] = v
	}
	for c, v := range icons {
		r.icons[c] = v
	}
	return r, nil
}

// Color returns the marker color for a category. Categories outside the
// table resolve to the fallback entry. Pure; never fails.
func (r *Resolver) Color(c partner.Category) string {
	if v, ok := r.colors[c]; ok {
		return v
	}
	return r.colors[partner.CategoryOther]
}

// Icon returns the icon key for a category. Categories outside the
// table resolve to the fallback entry. Pure; never fails.
func (r *Resolver) Icon(c partner.Category) string {
	if v, ok := r.icons[c]; ok {
		return v
	}
	return r.icons[partner.CategoryOther]
}

// checkPartition verifies a table covers the category partition exactly.
func checkPartition(kind string, table map[partner.Category]string) error {
	for _, c := range partner.Categories() {
		v, ok := table[c]
		if !ok {
			return fmt.Errorf("%s table missing entry for category %q", kind, c)
		}
		if v == "" {
			return fmt.Errorf("%s table has empty value for category %q", kind, c)
		}
	}
	if len(table) != len(partner.Categories()) {
		return fmt.Errorf("%s table has %d entries, want %d (one per category)", kind, len(table), len(partner.Categories()))
	}
	return nil
}
