package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openharvest/partnermap/internal/bundle"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output string // bundle file path, overrides the manifest
	Export bool   // also write the persisted exports
}

// BuildResult is the build command's success payload.
type BuildResult struct {
	BundlePath string         `json:"bundle_path"`
	BuildID    string         `json:"build_id"`
	Partners   int            `json:"partners"`
	Groups     map[string]int `json:"groups"`
	Exported   []string       `json:"exported,omitempty"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <manifest>",
		Short: "Build the map bundle from a dataset manifest",
		Long: `Build runs the full pipeline: load the partner CSV and boundary
polygon, derive marker styles and popup markup for every record, and
write the map bundle consumed by the map renderer.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "bundle output path (default from manifest)")
	cmd.Flags().BoolVar(&opts.Export, "export", false, "also write the flat-file exports")

	return cmd
}

func runBuild(opts *BuildOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ds, err := loadDataset(manifestPath, formatter)
	if err != nil {
		return err
	}

	meta := bundle.NewMeta()
	doc := bundle.Build(ds.styled, ds.boundary, ds.cfg, meta)

	bundlePath := ds.manifest.BundlePath()
	if opts.Output != "" {
		bundlePath = opts.Output
	}
	if err := doc.WriteFile(bundlePath); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, err.Error())
	}
	formatter.VerboseLog("Wrote bundle to %s", bundlePath)

	result := &BuildResult{
		BundlePath: bundlePath,
		BuildID:    meta.BuildID,
		Partners:   len(ds.styled),
		Groups:     map[string]int{},
	}
	order, counts := groupCounts(ds.styled)
	for _, cat := range order {
		result.Groups[cat.String()] = counts[cat]
	}

	if opts.Export {
		exported, err := writeExports(cmd.Context(), ds, exportAll, formatter)
		if err != nil {
			return err
		}
		result.Exported = exported
	}

	return outputBuildSuccess(formatter, ds, result)
}

// outputBuildSuccess outputs the build summary.
func outputBuildSuccess(formatter *OutputFormatter, ds *dataset, result *BuildResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Built map bundle: %d partner(s)\n\n", result.Partners)

	order, counts := groupCounts(ds.styled)
	for _, cat := range order {
		if counts[cat] == 0 {
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s: %d\n", cat, counts[cat])
	}
	fmt.Fprintln(formatter.Writer)

	for _, p := range result.Exported {
		fmt.Fprintf(formatter.Writer, "Wrote %s\n", p)
	}
	fmt.Fprintf(formatter.Writer, "Wrote map bundle to %s\n", result.BundlePath)

	return nil
}
