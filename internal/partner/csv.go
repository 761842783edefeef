package partner

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Column names expected in the partner CSV. Only the coordinate columns
// are required to exist; every attribute column may be missing entirely,
// in which case its field loads as empty.
const (
	colName     = "Name"
	colAddress  = "Address"
	colAddress2 = "Address_Line_2"
	colCity     = "City"
	colState    = "State"
	colZip      = "Zip5"
	colType     = "Type"
	colCategory = "Category" // accepted alias for Type
	colDates    = "Dates"
	colDays     = "Day(s) of the Week"
	colHours    = "Hours"
	colLink     = "Link"
	colNotes    = "Notes"
	colLon      = "Longitude"
	colLat      = "Latitude"
)

// LoadCSV reads partner records from a CSV file. The header row is
// mapped by name so column order doesn't matter. Longitude and Latitude
// must be present and numeric on every row; all other cells may be
// empty. Row numbers in errors are 1-based file line numbers.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := rows[0]
	// Excel exports often carry a BOM on the first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{colLon, colLat} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	var out []Record
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		rec := rows[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		lon, err := parseCoord(get(colLon), -180, 180)
		if err != nil {
			return nil, fmt.Errorf("row %d: Longitude: %w", rowIdx+1, err)
		}
		lat, err := parseCoord(get(colLat), -90, 90)
		if err != nil {
			return nil, fmt.Errorf("row %d: Latitude: %w", rowIdx+1, err)
		}

		category := get(colType)
		if category == "" {
			category = get(colCategory)
		}

		out = append(out, Record{
			Name:     get(colName),
			Address:  get(colAddress),
			Address2: get(colAddress2),
			City:     get(colCity),
			State:    get(colState),
			Zip5:     get(colZip),
			Category: category,
			Dates:    get(colDates),
			Days:     get(colDays),
			Hours:    get(colHours),
			Link:     get(colLink),
			Notes:    get(colNotes),
			Lon:      lon,
			Lat:      lat,
		})
	}

	return out, nil
}

// parseCoord parses a coordinate cell and range-checks it. An empty
// cell is an error: coordinates are the one mandatory field.
func parseCoord(cell string, min, max float64) (float64, error) {
	if cell == "" {
		return 0, errors.New("is empty (coordinates are required)")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", cell)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("out of range: %v", v)
	}
	return v, nil
}
