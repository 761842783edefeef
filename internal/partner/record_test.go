package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryKnownLabels(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Farmers Market", CategoryFarmersMarket},
		{"CSA / Delivery", CategoryCSADelivery},
		{"Store", CategoryStore},
		{"Mobile Market", CategoryMobileMarket},
		{"Other", CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.label), "label %q", tt.label)
	}
}

func TestParseCategoryNormalizesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, CategoryFarmersMarket, ParseCategory("  farmers market "))
	assert.Equal(t, CategoryStore, ParseCategory("STORE"))
}

func TestParseCategoryUnrecognizedFallsBack(t *testing.T) {
	assert.Equal(t, CategoryOther, ParseCategory(""))
	assert.Equal(t, CategoryOther, ParseCategory("Pop-Up Market"))
	assert.Equal(t, CategoryOther, ParseCategory("CSA"))
}

func TestCategoryStringRoundTrip(t *testing.T) {
	for _, cat := range Categories() {
		assert.Equal(t, cat, ParseCategory(cat.String()))
	}
}

func TestCategoriesPartitionShape(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 5)
	// Fallback comes last so summaries list real categories first.
	assert.Equal(t, CategoryOther, cats[len(cats)-1])
}
