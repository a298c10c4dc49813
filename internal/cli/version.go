package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/buildinfo"
	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// versionCommand creates the "version" command.
func (c *CLI) versionCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatTable:
				fmt.Fprintln(stdout, buildinfo.String())
				return nil
			case formatYAML, formatJSON:
				return encode(stdout, format, buildinfo.Get())
			}
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q: use table, yaml or json", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, yaml or json")
	return cmd
}
