package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openharvest/partnermap/internal/partner"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat warnings as failures
}

// ValidateResult is the validate command's success payload.
type ValidateResult struct {
	Partners int      `json:"partners"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check a dataset without writing output",
		Long: `Validate loads the partner CSV, the boundary polygon, and the map
configuration exactly as build does, and reports problems instead of
writing output. Hard failures (unreadable files, bad coordinates,
degenerate geometry) fail the command; suspicious-but-renderable rows
(missing names, unrecognized category labels) are warnings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")

	return cmd
}

func runValidate(opts *ValidateOptions, manifestPath string, cmd *cobra.Command) error {
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

	result := &ValidateResult{
		Partners: len(ds.records),
		Warnings: collectWarnings(ds.records),
	}

	if opts.Strict && len(result.Warnings) > 0 {
		if formatter.Format == "json" {
			_ = formatter.Error(ErrCodeData,
				fmt.Sprintf("%d warning(s) in strict mode", len(result.Warnings)), result.Warnings)
		} else {
			outputValidateText(formatter, result, false)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	outputValidateText(formatter, result, true)
	return nil
}

// collectWarnings flags rows that will render but probably shouldn't
// ship as-is. Unrecognized categories are worth surfacing: they fall
// back to Other silently at derivation time.
func collectWarnings(records []partner.Record) []string {
	var warnings []string
	for i, rec := range records {
		// Row numbers match the CSV file, header included.
		row := i + 2
		if rec.Name == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: Name is empty", row))
		}
		if rec.Category != "" && partner.ParseCategory(rec.Category) == partner.CategoryOther &&
			!strings.EqualFold(strings.TrimSpace(rec.Category), "Other") {
			warnings = append(warnings, fmt.Sprintf("row %d: unrecognized category %q (will render as Other)", row, rec.Category))
		}
		if rec.City == "" && rec.Address != "" {
			warnings = append(warnings, fmt.Sprintf("row %d: Address without City (no directions link)", row))
		}
	}
	return warnings
}

func outputValidateText(formatter *OutputFormatter, result *ValidateResult, ok bool) {
	if ok {
		fmt.Fprintf(formatter.Writer, "✓ Validated %d partner(s)\n", result.Partners)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Validation failed\n")
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(formatter.Writer)
		for _, w := range result.Warnings {
			fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
		}
	}
}
