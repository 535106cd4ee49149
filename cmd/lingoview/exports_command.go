package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lingoview/internal/exports"
	"lingoview/internal/language"
)

func newExportsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "exports",
		Short: "List completed subtitle exports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := exports.List(cfg.ExportDir(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No exports yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, meta := range entries {
				translation := "-"
				if meta.TranslationLanguage != "" {
					translation = language.DisplayName(meta.TranslationLanguage)
				}
				rows = append(rows, []string{
					meta.Timestamp,
					meta.Media,
					language.DisplayName(meta.Language),
					translation,
					strconv.Itoa(len(meta.Segments)),
				})
			}
			renderTable(out, []string{"Created", "Media", "Language", "Translation", "Segments"}, rows, 5)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of exports to show")
	return cmd
}
