package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingoview/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "preflight",
		Aliases: []string{"status"},
		Short:   "Verify directories, binaries, and API credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}
			renderTable(cmd.OutOrStdout(), []string{"Check", "Status", "Detail"}, rows)

			if !preflight.AllPassed(results) {
				return fmt.Errorf("preflight found problems")
			}
			return nil
		},
	}
}
