package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openharvest/partnermap/internal/export"
)

// Export kinds accepted by the --kind flag.
const (
	exportCSV     = "csv"
	exportGeoJSON = "geojson"
	exportSQLite  = "sqlite"
	exportAll     = "all"
)

var validExportKinds = []string{exportCSV, exportGeoJSON, exportSQLite, exportAll}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Kind string
}

// ExportResult is the export command's success payload.
type ExportResult struct {
	Partners int      `json:"partners"`
	Exported []string `json:"exported"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <manifest>",
		Short: "Write the flat-file exports for a dataset",
		Long: `Export writes the persisted record exports: flat CSV tables with and
without coordinate columns, geometry-bearing GeoJSON variants of both,
and a SQLite catalog. Popup markup never appears in any export.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", exportAll, "export kind (csv|geojson|sqlite|all)")

	return cmd
}

func runExport(opts *ExportOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if !isValidExportKind(opts.Kind) {
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("invalid kind %q: must be one of %v", opts.Kind, validExportKinds))
	}

	ds, err := loadDataset(manifestPath, formatter)
	if err != nil {
		return err
	}

	exported, err := writeExports(cmd.Context(), ds, opts.Kind, formatter)
	if err != nil {
		return err
	}

	result := &ExportResult{Partners: len(ds.styled), Exported: exported}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Exported %d partner(s)\n\n", result.Partners)
	for _, p := range exported {
		fmt.Fprintf(formatter.Writer, "Wrote %s\n", p)
	}
	return nil
}

// writeExports writes the selected export files into the manifest's
// output directory and returns their paths.
func writeExports(ctx context.Context, ds *dataset, kind string, formatter *OutputFormatter) ([]string, error) {
	out := ds.manifest.Output
	var exported []string

	write := func(path string, fn func(string) error) error {
		if err := fn(path); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed,
				fmt.Sprintf("%s: %v", path, err))
		}
		formatter.VerboseLog("Wrote %s", path)
		exported = append(exported, path)
		return nil
	}

	if kind == exportCSV || kind == exportAll {
		if err := write(filepath.Join(out, "partners.csv"), func(p string) error {
			return export.WriteCSV(p, ds.styled, false)
		}); err != nil {
			return nil, err
		}
		if err := write(filepath.Join(out, "partners_latlon.csv"), func(p string) error {
			return export.WriteCSV(p, ds.styled, true)
		}); err != nil {
			return nil, err
		}
	}

	if kind == exportGeoJSON || kind == exportAll {
		if err := write(filepath.Join(out, "partners.geojson"), func(p string) error {
			return export.WriteGeoJSON(p, ds.styled, false)
		}); err != nil {
			return nil, err
		}
		if err := write(filepath.Join(out, "partners_latlon.geojson"), func(p string) error {
			return export.WriteGeoJSON(p, ds.styled, true)
		}); err != nil {
			return nil, err
		}
	}

	if kind == exportSQLite || kind == exportAll {
		if err := write(filepath.Join(out, "partners.db"), func(p string) error {
			return export.WriteSQLite(ctx, p, ds.styled)
		}); err != nil {
			return nil, err
		}
	}

	return exported, nil
}

func isValidExportKind(kind string) bool {
	for _, k := range validExportKinds {
		if k == kind {
			return true
		}
	}
	return false
}
