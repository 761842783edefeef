package cli

import (
	"github.com/openharvest/partnermap/internal/bundle"
	"github.com/openharvest/partnermap/internal/config"
	"github.com/openharvest/partnermap/internal/geo"
	"github.com/openharvest/partnermap/internal/partner"
	"github.com/openharvest/partnermap/internal/popup"
	"github.com/openharvest/partnermap/internal/style"
)

// dataset is everything a command needs after the manifest is loaded:
// the resolved inputs plus the derived partner set.
type dataset struct {
	manifest *config.Manifest
	cfg      *config.Config
	records  []partner.Record
	boundary *geo.Boundary
	styled   []bundle.Styled
}

// loadDataset runs the loader and deriver stages for a manifest.
// Manifest and config problems are command errors (exit 2); data and
// geometry problems are data failures (exit 1). On error it has
// already written output through the formatter.
func loadDataset(manifestPath string, formatter *OutputFormatter) (*dataset, error) {
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return nil, fail(formatter, ExitCommandError, ErrCodeManifest, err.Error())
	}
	formatter.VerboseLog("Manifest: partners=%s boundary=%s output=%s",
		manifest.Partners, manifest.Boundary, manifest.Output)

	cfg, err := config.Load(manifest.Config)
	if err != nil {
		return nil, fail(formatter, ExitCommandError, ErrCodeConfig, err.Error())
	}

	resolver, err := style.NewResolver(cfg.Colors, cfg.Icons)
	if err != nil {
		return nil, fail(formatter, ExitCommandError, ErrCodeConfig, err.Error())
	}

	records, err := partner.LoadCSV(manifest.Partners)
	if err != nil {
		return nil, fail(formatter, ExitFailure, ErrCodeData, err.Error())
	}
	formatter.VerboseLog("Loaded %d partner record(s)", len(records))

	boundary, err := geo.Load(manifest.Boundary)
	if err != nil {
		return nil, fail(formatter, ExitFailure, ErrCodeGeometry, err.Error())
	}

	styled := bundle.Derive(records, resolver, popup.Renderer{Region: cfg.Region.Code})

	return &dataset{
		manifest: manifest,
		cfg:      cfg,
		records:  records,
		boundary: boundary,
		styled:   styled,
	}, nil
}

// groupCounts tallies styled partners per category, in partition order.
func groupCounts(styled []bundle.Styled) ([]partner.Category, map[partner.Category]int) {
	counts := make(map[partner.Category]int)
	for _, s := range styled {
		counts[s.Category]++
	}
	return partner.Categories(), counts
}
