package bundle

import (
	"github.com/openharvest/partnermap/internal/partner"
	"github.com/openharvest/partnermap/internal/popup"
	"github.com/openharvest/partnermap/internal/style"
)

// Styled is a partner record plus its derived presentation attributes.
// After derivation the category is never absent: unrecognized or empty
// source labels have already defaulted to Other.
type Styled struct {
	partner.Record

	Category      partner.Category
	Color         string
	Icon          string
	Group         string // category display name, used as the layer group key
	DirectionsURL string // empty when the record has no city or address
	Popup         string // rendered popup markup
}

// Derive runs the derivation stage over a record set. Each record is
// derived independently, in input order. The derivation is pure:
// deriving the same records twice yields identical output, including
// byte-identical popup markup.
func Derive(records []partner.Record, res *style.Resolver, ren popup.Renderer) []Styled {
	out := make([]Styled, 0, len(records))
	for _, rec := range records {
		cat := partner.ParseCategory(rec.Category)
		out = append(out, Styled{
			Record:        rec,
			Category:      cat,
			Color:         res.Color(cat),
			Icon:          res.Icon(cat),
			Group:         cat.String(),
			DirectionsURL: ren.DirectionsURL(rec),
			Popup:         ren.Render(rec, cat),
		})
	}
	return out
}
