// Package bundle assembles the map bundle: the JSON document handed to
// the external map-rendering collaborator. The bundle carries styled
// partner features, the boundary-derived geometry (outside mask,
// bounding box, center, pan bounds), and the fixed view controls.
// Rendering itself (tiles, pan/zoom UI, search) is out of scope; the
// bundle is the whole contract.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/openharvest/partnermap/internal/config"
	"github.com/openharvest/partnermap/internal/geo"
)

// Document is the map bundle. Apart from Meta it is a deterministic
// function of the inputs: partner features appear in input order and
// all geometry derives from the boundary and config constants.
type Document struct {
	Meta        Meta                       `json:"meta"`
	Region      RegionInfo                 `json:"region"`
	BBox        []float64                  `json:"bbox"`       // [west, south, east, north]
	Center      []float64                  `json:"center"`     // [lon, lat]
	PanBounds   []float64                  `json:"pan_bounds"` // [west, south, east, north]
	DefaultZoom int                        `json:"default_zoom"`
	Controls    []Control                  `json:"controls"`
	Mask        *geojson.Feature           `json:"mask"`
	Partners    *geojson.FeatureCollection `json:"partners"`
}

// Meta identifies one build run. Zero Meta is valid and serializes to
// an empty object, which keeps test output stable.
type Meta struct {
	BuildID     string `json:"build_id,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// RegionInfo names the state the bundle covers.
type RegionInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Control is a named interactive button: recenter to a coordinate at a
// fixed zoom level.
type Control struct {
	Name   string  `json:"name"`
	Action string  `json:"action"` // "reset" or "zoom"
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Zoom   int     `json:"zoom"`
}

// NewMeta stamps a build with a fresh ID and the current time.
func NewMeta() Meta {
	return Meta{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Build assembles the bundle document from styled partners, the
// validated boundary, and the map configuration.
func Build(styled []Styled, boundary *geo.Boundary, cfg *config.Config, meta Meta) *Document {
	bound := boundary.Bound()
	center := boundary.Center()
	pan := boundary.PanBounds(cfg.Geometry.PanPadLon, cfg.Geometry.PanPadLat)

	mask := geojson.NewFeature(boundary.OutsideMask(cfg.Geometry.MaskBuffer))
	mask.Properties = geojson.Properties{"role": "outside-mask"}

	partners := geojson.NewFeatureCollection()
	for _, s := range styled {
		f := geojson.NewFeature(orb.Point{s.Lon, s.Lat})
		f.Properties = geojson.Properties{
			"name":  s.Name,
			"color": s.Color,
			"icon":  s.Icon,
			"group": s.Group,
			"popup": s.Popup,
		}
		partners.Append(f)
	}

	controls := []Control{{
		Name:   "Reset view",
		Action: "reset",
		Lat:    center.Lat(),
		Lon:    center.Lon(),
		Zoom:   cfg.Geometry.DefaultZoom,
	}}
	for _, sub := range cfg.Subregions {
		controls = append(controls, Control{
			Name:   sub.Name,
			Action: "zoom",
			Lat:    sub.Lat,
			Lon:    sub.Lon,
			Zoom:   sub.Zoom,
		})
	}

	return &Document{
		Meta:        meta,
		Region:      RegionInfo{Name: cfg.Region.Name, Code: cfg.Region.Code},
		BBox:        boundSlice(bound),
		Center:      []float64{center.Lon(), center.Lat()},
		PanBounds:   boundSlice(pan),
		DefaultZoom: cfg.Geometry.DefaultZoom,
		Controls:    controls,
		Mask:        mask,
		Partners:    partners,
	}
}

// WriteFile writes the bundle as indented JSON.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// boundSlice flattens a bound to [west, south, east, north].
func boundSlice(b orb.Bound) []float64 {
	return []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}
