package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"vizcast/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if !cfg.Output.HistoryEnabled {
				return fmt.Errorf("conversion history is disabled (output.history_enabled)")
			}

			store, err := history.Open(cmd.Context(), cfg.Output.HistoryPath)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No conversions recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.Output
				if entry.Status == history.StatusFailed {
					detail = entry.Detail
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(entry.Source),
					entry.Status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"When", "Source", "Status", "Output"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}
