package preflight

import (
	"context"

	"lingoview/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable checks for the given config. Checks for
// optional features only run when the feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Storage directory", cfg.Paths.StorageDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckBinary("ffmpeg", "ffmpeg"),
		CheckWhisperAPI(cfg.Whisper),
	}

	if cfg.Vocals.Enabled {
		results = append(results, CheckBinary("Demucs", cfg.Vocals.Executable))
	}
	if cfg.Tokenizer.Backend == "mecab" {
		results = append(results, CheckBinary("MeCab", cfg.Tokenizer.MecabBinary))
	}

	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
