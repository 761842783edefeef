package partner

import "strings"

// Category classifies a partner's distribution model. The set is closed:
// anything outside it (including an empty label) is CategoryOther.
type Category int

const (
	CategoryOther Category = iota
	CategoryFarmersMarket
	CategoryCSADelivery
	CategoryStore
	CategoryMobileMarket
)

// categoryLabels maps each category to its display name, which is also
// the label used in the source data's Type column.
var categoryLabels = map[Category]string{
	CategoryOther:         "Other",
	CategoryFarmersMarket: "Farmers Market",
	CategoryCSADelivery:   "CSA / Delivery",
	CategoryStore:         "Store",
	CategoryMobileMarket:  "Mobile Market",
}

// String returns the category's display name.
func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// ParseCategory maps a raw Type label to a Category. Matching is
// whitespace- and case-insensitive. Absent or unrecognized labels
// resolve to CategoryOther; parsing never fails.
func ParseCategory(label string) Category {
	trimmed := strings.TrimSpace(label)
	for cat, display := range categoryLabels {
		if strings.EqualFold(trimmed, display) {
			return cat
		}
	}
	return CategoryOther
}

// Categories returns the full category partition in display order,
// fallback last. Style tables must cover exactly this set.
func Categories() []Category {
	return []Category{
		CategoryFarmersMarket,
		CategoryCSADelivery,
		CategoryStore,
		CategoryMobileMarket,
		CategoryOther,
	}
}

// Record is one partner location as loaded from the source table.
// Every field except Lon/Lat may be empty; an empty field is a normal
// condition that downstream stages render as omitted, never an error.
// Records are immutable after load.
type Record struct {
	Name     string
	Address  string
	Address2 string
	City     string
	State    string
	Zip5     string
	Category string // raw Type label, possibly empty or unrecognized
	Dates    string
	Days     string
	Hours    string
	Link     string
	Notes    string
	Lon      float64
	Lat      float64
}
