package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharvest/partnermap/internal/bundle"
	"github.com/openharvest/partnermap/internal/partner"
)

func styledFixtures() []bundle.Styled {
	return []bundle.Styled{
		{
			Record: partner.Record{
				Name:    "Downtown Farmers Market",
				Address: "100 Main St",
				City:    "Springfield",
				State:   "IL",
				Zip5:    "62701",
				Dates:   "May - Oct",
				Days:    "Tuesday, Thursday",
				Hours:   "8am - 1pm",
				Link:    "https://example.org/downtown",
				Lon:     -89.65,
				Lat:     39.78,
			},
			Category: partner.CategoryFarmersMarket,
			Color:    "green",
			Icon:     "leaf",
			Group:    "Farmers Market",
			Popup:    "<b>Downtown Farmers Market</b><br/>",
		},
		{
			Record: partner.Record{
				Name:  "Prairie CSA",
				City:  "Peoria",
				State: "IL",
				Lon:   -89.589,
				Lat:   40.6936,
			},
			Category: partner.CategoryCSADelivery,
			Color:    "blue",
			Icon:     "home",
			Group:    "CSA / Delivery",
			Popup:    "<b>Prairie CSA</b><br/>",
		},
	}
}

func TestWriteCSVWithCoordsGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners_latlon.csv")
	require.NoError(t, WriteCSV(path, styledFixtures(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "partners_latlon", data)
}

func TestWriteCSVAttributesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.csv")
	require.NoError(t, WriteCSV(path, styledFixtures(), false))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, attributeHeader, rows[0])
	assert.NotContains(t, rows[0], "Latitude")
	assert.NotContains(t, rows[0], "Longitude")

	assert.Equal(t, "Downtown Farmers Market", rows[1][0])
	assert.Equal(t, "Farmers Market", rows[1][6])
	assert.Equal(t, "Tuesday, Thursday", rows[1][8])
	assert.Equal(t, "CSA / Delivery", rows[2][6])
}

// Popup markup is bundle-only and must never leak into exports.
func TestExportsOmitPopup(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "partners.csv")
	geoPath := filepath.Join(dir, "partners.geojson")
	require.NoError(t, WriteCSV(csvPath, styledFixtures(), true))
	require.NoError(t, WriteGeoJSON(geoPath, styledFixtures(), true))

	for _, path := range []string{csvPath, geoPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "<b>")
		assert.NotContains(t, string(data), "popup")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.geojson")
	require.NoError(t, WriteGeoJSON(path, styledFixtures(), false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Downtown Farmers Market", f.Properties["Name"])
	assert.Equal(t, "Farmers Market", f.Properties["Type"])
	assert.Equal(t, "Tuesday, Thursday", f.Properties["Day(s) of the Week"])
	assert.NotContains(t, f.Properties, "Latitude")

	pt := f.Point()
	assert.Equal(t, -89.65, pt.Lon())
	assert.Equal(t, 39.78, pt.Lat())
}

func TestWriteGeoJSONWithCoords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners_latlon.geojson")
	require.NoError(t, WriteGeoJSON(path, styledFixtures(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, 39.78, fc.Features[0].Properties["Latitude"])
	assert.Equal(t, -89.65, fc.Features[0].Properties["Longitude"])
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "partners.csv"), styledFixtures(), false)
	assert.Error(t, err)
}
