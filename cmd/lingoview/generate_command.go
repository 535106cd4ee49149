package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"lingoview/internal/language"
	"lingoview/internal/pipeline"
	"lingoview/internal/store"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var targetLanguage string
	var title string

	cmd := &cobra.Command{
		Use:   "generate <media-file>",
		Short: "Transcribe a recording and export subtitle segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			if _, err := os.Stat(mediaPath); err != nil {
				return fmt.Errorf("media file: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := pipeline.New(cfg, st, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			outcome, err := p.Generate(runCtx, pipeline.Request{
				MediaPath:      mediaPath,
				TargetLanguage: targetLanguage,
				Title:          title,
			})
			if err != nil {
				return err
			}

			printOutcome(cmd, outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetLanguage, "target-language", "t", "", "Translate segments into this language")
	cmd.Flags().StringVar(&title, "title", "", "Title passed to the translator for context")
	return cmd
}

func printOutcome(cmd *cobra.Command, outcome *pipeline.Outcome) {
	out := cmd.OutOrStdout()
	result := outcome.Result

	if outcome.FromCache {
		fmt.Fprintln(out, "Reused cached result for unchanged media")
	}
	fmt.Fprintf(out, "Language: %s\n", language.DisplayName(result.Language))
	if result.TranslationLanguage != "" {
		fmt.Fprintf(out, "Translated into: %s\n", language.DisplayName(result.TranslationLanguage))
	}
	fmt.Fprintf(out, "Segments: %d\n", len(result.Segments))

	if outcome.Metadata == nil || len(outcome.Metadata.Exports) == 0 {
		return
	}
	kinds := make([]string, 0, len(outcome.Metadata.Exports))
	for kind := range outcome.Metadata.Exports {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		file := outcome.Metadata.Exports[kind]
		rows = append(rows, []string{kind, file.Path})
	}
	fmt.Fprintln(out)
	renderTable(out, []string{"Export", "Path"}, rows)
}
