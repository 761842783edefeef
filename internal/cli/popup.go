package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PopupOptions holds flags for the popup command.
type PopupOptions struct {
	*RootOptions
	Name string // render only the partner with this name
}

// PopupEntry pairs a partner name with its rendered popup markup.
type PopupEntry struct {
	Name  string `json:"name"`
	Popup string `json:"popup"`
}

// NewPopupCommand creates the popup command.
func NewPopupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PopupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "popup <manifest>",
		Short: "Render popup markup for inspection",
		Long: `Popup renders the popup markup the map would show for each partner
and prints it, for eyeballing layout changes without rebuilding the
bundle. Use --name to render a single partner.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopup(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "render only the partner with this name")

	return cmd
}

func runPopup(opts *PopupOptions, manifestPath string, cmd *cobra.Command) error {
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

	var entries []PopupEntry
	for _, s := range ds.styled {
		if opts.Name != "" && !strings.EqualFold(s.Name, opts.Name) {
			continue
		}
		entries = append(entries, PopupEntry{Name: s.Name, Popup: s.Popup})
	}

	if opts.Name != "" && len(entries) == 0 {
		return fail(formatter, ExitFailure, ErrCodeData,
			fmt.Sprintf("no partner named %q", opts.Name))
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s:\n%s\n\n", e.Name, e.Popup)
	}
	return nil
}
