// Package config loads the map configuration and the dataset manifest.
//
// The map configuration (styles, region, geometry constants, view
// controls) is a CUE file unified with a compiled-in schema that also
// carries the defaults; running with no config file uses the defaults
// alone. The dataset manifest is a small YAML file naming the input
// files and output directory for one build.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/openharvest/partnermap/internal/partner"
)

//go:embed defaults.cue
var defaultsCUE string

// Config is the decoded map configuration. Style tables key on the
// normalized category partition and feed style.NewResolver, which
// enforces completeness.
type Config struct {
	Region     Region
	Colors     map[partner.Category]string
	Icons      map[partner.Category]string
	Geometry   Geometry
	Subregions []Subregion
}

// Region identifies the single state the map covers.
type Region struct {
	Name string // display name, e.g. "Illinois"
	Code string // code appended to directions links, e.g. "IL"
}

// Geometry holds the boundary-derivation constants.
type Geometry struct {
	MaskBuffer  float64
	PanPadLon   float64
	PanPadLat   float64
	DefaultZoom int
}

// Subregion is a named zoom target: recenter to a fixed coordinate at
// a fixed zoom level.
type Subregion struct {
	Name string
	Lat  float64
	Lon  float64
	Zoom int
}

// ConfigError reports a problem in the configuration with source
// position when CUE can provide one.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the compiled-in configuration.
func Default() (*Config, error) {
	return Load("")
}

// Load builds the configuration. With an empty path the embedded
// defaults are used as-is; otherwise the user file is unified with the
// schema, so it may override any default but cannot add unknown
// categories or out-of-range values.
func Load(path string) (*Config, error) {
	ctx := cuecontext.New()

	v := ctx.CompileString(defaultsCUE, cue.Filename("defaults.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		user := ctx.CompileBytes(data, cue.Filename(path))
		if err := user.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		v = v.Unify(user)
		if err := v.Err(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	return parseConfig(v)
}

// parseConfig decodes a concrete CUE value into a Config.
func parseConfig(v cue.Value) (*Config, error) {
	cfg := &Config{}
	var err error

	if cfg.Region.Name, err = stringAt(v, "region.name"); err != nil {
		return nil, err
	}
	if cfg.Region.Code, err = stringAt(v, "region.code"); err != nil {
		return nil, err
	}

	if cfg.Colors, err = styleTableAt(v, "styles.colors"); err != nil {
		return nil, err
	}
	if cfg.Icons, err = styleTableAt(v, "styles.icons"); err != nil {
		return nil, err
	}

	if cfg.Geometry.MaskBuffer, err = floatAt(v, "geometry.maskBuffer"); err != nil {
		return nil, err
	}
	if cfg.Geometry.PanPadLon, err = floatAt(v, "geometry.panPadLon"); err != nil {
		return nil, err
	}
	if cfg.Geometry.PanPadLat, err = floatAt(v, "geometry.panPadLat"); err != nil {
		return nil, err
	}
	if cfg.Geometry.DefaultZoom, err = intAt(v, "geometry.defaultZoom"); err != nil {
		return nil, err
	}

	if cfg.Subregions, err = subregionsAt(v, "subregions"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// styleTableAt decodes a category→value table, rejecting labels outside
// the closed category partition. A label that parses as Other without
// literally being "Other" is a table entry for a category that doesn't
// exist, which should be a product decision, not a silent fallback.
func styleTableAt(v cue.Value, path string) (map[partner.Category]string, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return nil, &ConfigError{Field: path, Message: "is required"}
	}
	iter, err := val.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	out := make(map[partner.Category]string)
	for iter.Next() {
		label := iter.Label()
		cat := partner.ParseCategory(label)
		if cat == partner.CategoryOther && !strings.EqualFold(strings.TrimSpace(label), "Other") {
			return nil, &ConfigError{
				Field:   path,
				Message: fmt.Sprintf("unknown category %q", label),
				Pos:     iter.Value().Pos(),
			}
		}
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out[cat] = s
	}
	return out, nil
}

// subregionsAt decodes the named zoom targets.
func subregionsAt(v cue.Value, path string) ([]Subregion, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return nil, nil // optional
	}
	iter, err := val.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []Subregion
	for iter.Next() {
		elem := iter.Value()
		var s Subregion
		if s.Name, err = stringAt(elem, "name"); err != nil {
			return nil, err
		}
		if s.Lat, err = floatAt(elem, "lat"); err != nil {
			return nil, err
		}
		if s.Lon, err = floatAt(elem, "lon"); err != nil {
			return nil, err
		}
		if s.Zoom, err = intAt(elem, "zoom"); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func stringAt(v cue.Value, path string) (string, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return "", &ConfigError{Field: path, Message: "is required", Pos: v.Pos()}
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func floatAt(v cue.Value, path string) (float64, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return 0, &ConfigError{Field: path, Message: "is required", Pos: v.Pos()}
	}
	f, err := val.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func intAt(v cue.Value, path string) (int, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return 0, &ConfigError{Field: path, Message: "is required", Pos: v.Pos()}
	}
	i, err := val.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(i), nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &ConfigError{
			Field:   "config",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
