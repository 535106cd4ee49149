package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lingoview/internal/language"
	"lingoview/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent generation runs from the run store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				translation := "-"
				if run.TranslationLanguage != "" {
					translation = language.DisplayName(run.TranslationLanguage)
				}
				rows = append(rows, []string{
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					run.Media,
					language.DisplayName(run.Language),
					translation,
					strconv.Itoa(run.SegmentCount),
				})
			}
			renderTable(out, []string{"Started", "Media", "Language", "Translation", "Segments"}, rows, 5)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show")
	return cmd
}
