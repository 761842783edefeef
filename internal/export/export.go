// Package export writes the persisted exports for downstream reuse:
// flat CSV tables (with and without coordinate columns), geometry-
// bearing GeoJSON variants of both, and a SQLite catalog. Popup markup
// never appears in any export.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/openharvest/partnermap/internal/bundle"
)

// attributeHeader is the flat-table column set, mirroring the source
// layout with the Type column normalized to the derived category.
var attributeHeader = []string{
	"Name", "Address", "Address_Line_2", "City", "State", "Zip5",
	"Type", "Dates", "Day(s) of the Week", "Hours", "Link", "Notes",
}

// WriteCSV writes a flat table of partner records. With withCoords the
// table carries explicit Latitude/Longitude columns.
func WriteCSV(path string, partners []bundle.Styled, withCoords bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := attributeHeader
	if withCoords {
		header = append(append([]string{}, attributeHeader...), "Latitude", "Longitude")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range partners {
		row := attributeRow(p)
		if withCoords {
			row = append(row, formatCoord(p.Lat), formatCoord(p.Lon))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteGeoJSON writes a geometry-bearing export: one point feature per
// partner with the flat attributes as properties. With withCoords the
// coordinates are duplicated as Latitude/Longitude properties for
// consumers that read attributes only.
func WriteGeoJSON(path string, partners []bundle.Styled, withCoords bool) error {
	fc := geojson.NewFeatureCollection()
	for _, p := range partners {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.Properties = geojson.Properties{
			"Name":               p.Name,
			"Address":            p.Address,
			"Address_Line_2":     p.Address2,
			"City":               p.City,
			"State":              p.State,
			"Zip5":               p.Zip5,
			"Type":               p.Category.String(),
			"Dates":              p.Dates,
			"Day(s) of the Week": p.Days,
			"Hours":              p.Hours,
			"Link":               p.Link,
			"Notes":              p.Notes,
		}
		if withCoords {
			f.Properties["Latitude"] = p.Lat
			f.Properties["Longitude"] = p.Lon
		}
		fc.Append(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func attributeRow(p bundle.Styled) []string {
	return []string{
		p.Name, p.Address, p.Address2, p.City, p.State, p.Zip5,
		p.Category.String(), p.Dates, p.Days, p.Hours, p.Link, p.Notes,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
