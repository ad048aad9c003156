package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vizcast/internal/palette"
)

func newPalettesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List available spectrum color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, name := range palette.Names() {
				scheme, err := palette.Resolve(name)
				if err != nil {
					return err
				}
				colors := make([]string, 0, len(scheme.Stops))
				for _, stop := range scheme.Stops {
					colors = append(colors, stop.Color)
				}
				rows = append(rows, []string{name, strings.Join(colors, " ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Scheme", "Colors"}, rows))
			return nil
		},
	}
}
