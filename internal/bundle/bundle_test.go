package bundle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharvest/partnermap/internal/config"
	"github.com/openharvest/partnermap/internal/geo"
	"github.com/openharvest/partnermap/internal/partner"
	"github.com/openharvest/partnermap/internal/popup"
	"github.com/openharvest/partnermap/internal/style"
)

func testRecords() []partner.Record {
	return []partner.Record{
		{
			Name:     "Downtown Farmers Market",
			Address:  "100 Main St",
			City:     "Springfield",
			State:    "IL",
			Zip5:     "62701",
			Category: "Farmers Market",
			Lon:      -89.65,
			Lat:      39.78,
		},
		{
			Name:     "Roadside Stand",
			Category: "Pop-Up",
			Lon:      -88.0,
			Lat:      41.0,
		},
	}
}

func testResolver(t *testing.T) *style.Resolver {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	res, err := style.NewResolver(cfg.Colors, cfg.Icons)
	require.NoError(t, err)
	return res
}

func testBoundary(t *testing.T) *geo.Boundary {
	t.Helper()
	b, err := geo.NewBoundary(orb.MultiPolygon{{{
		{-91, 37}, {-87, 37}, {-87, 42}, {-91, 42}, {-91, 37},
	}}})
	require.NoError(t, err)
	return b
}

func TestDerive(t *testing.T) {
	res := testResolver(t)
	ren := popup.Renderer{Region: "IL"}

	styled := Derive(testRecords(), res, ren)
	require.Len(t, styled, 2)

	first := styled[0]
	assert.Equal(t, "Downtown Farmers Market", first.Name)
	assert.Equal(t, partner.CategoryFarmersMarket, first.Category)
	assert.Equal(t, "green", first.Color)
	assert.Equal(t, "leaf", first.Icon)
	assert.Equal(t, "Farmers Market", first.Group)
	assert.NotEmpty(t, first.DirectionsURL)
	assert.Contains(t, first.Popup, "<b>Downtown Farmers Market</b>")

	// Unrecognized source label falls back to Other.
	second := styled[1]
	assert.Equal(t, partner.CategoryOther, second.Category)
	assert.Equal(t, "cadetblue", second.Color)
	assert.Equal(t, "info-sign", second.Icon)
	assert.Equal(t, "Other", second.Group)
	assert.Empty(t, second.DirectionsURL)
}

func TestDeriveDeterministic(t *testing.T) {
	res := testResolver(t)
	ren := popup.Renderer{Region: "IL"}

	a := Derive(testRecords(), res, ren)
	b := Derive(testRecords(), res, ren)
	assert.Equal(t, a, b)
}

func TestDeriveEmpty(t *testing.T) {
	styled := Derive(nil, testResolver(t), popup.Renderer{Region: "IL"})
	assert.Empty(t, styled)
}

func TestBuildDocument(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	boundary := testBoundary(t)
	styled := Derive(testRecords(), testResolver(t), popup.Renderer{Region: cfg.Region.Code})

	doc := Build(styled, boundary, cfg, Meta{})

	assert.Equal(t, "Illinois", doc.Region.Name)
	assert.Equal(t, "IL", doc.Region.Code)
	assert.Equal(t, []float64{-91, 37, -87, 42}, doc.BBox)
	assert.Equal(t, []float64{-89, 39.5}, doc.Center)
	assert.Equal(t, []float64{-92.5, 36.5, -85.5, 42.5}, doc.PanBounds)
	assert.Equal(t, 7, doc.DefaultZoom)

	// Reset control first, then configured subregions.
	require.Len(t, doc.Controls, 2)
	assert.Equal(t, Control{Name: "Reset view", Action: "reset", Lat: 39.5, Lon: -89, Zoom: 7}, doc.Controls[0])
	assert.Equal(t, Control{Name: "Chicago", Action: "zoom", Lat: 41.8781, Lon: -87.6298, Zoom: 10}, doc.Controls[1])

	require.NotNil(t, doc.Mask)
	assert.Equal(t, "outside-mask", doc.Mask.Properties["role"])
	mask, ok := doc.Mask.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, mask, 2)

	require.NotNil(t, doc.Partners)
	require.Len(t, doc.Partners.Features, 2)
	f := doc.Partners.Features[0]
	assert.Equal(t, orb.Point{-89.65, 39.78}, f.Geometry)
	assert.Equal(t, "Downtown Farmers Market", f.Properties["name"])
	assert.Equal(t, "green", f.Properties["color"])
	assert.Equal(t, "leaf", f.Properties["icon"])
	assert.Equal(t, "Farmers Market", f.Properties["group"])
	assert.Equal(t, styled[0].Popup, f.Properties["popup"])
}

func TestNewMeta(t *testing.T) {
	m := NewMeta()
	assert.NotEmpty(t, m.BuildID)
	assert.NotEmpty(t, m.GeneratedAt)
	assert.NotEqual(t, m.BuildID, NewMeta().BuildID)
}

func TestWriteFile(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	doc := Build(nil, testBoundary(t), cfg, Meta{BuildID: "test-build"})

	path := filepath.Join(t.TempDir(), "map_bundle.json")
	require.NoError(t, doc.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	meta, ok := decoded["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test-build", meta["build_id"])
	assert.Contains(t, decoded, "mask")
	assert.Contains(t, decoded, "partners")
}

func TestWriteFileBadPath(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	doc := Build(nil, testBoundary(t), cfg, Meta{})

	err = doc.WriteFile(filepath.Join(t.TempDir(), "missing", "map_bundle.json"))
	assert.Error(t, err)
}
