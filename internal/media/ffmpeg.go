package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpegBinary is the executable used for decoding. Overridable for tests.
var FFmpegBinary = "ffmpeg"

// Normalize decodes source into a mono 16 kHz 16-bit PCM WAV at target.
// The caller owns the target file and removes it when the run finishes.
func Normalize(ctx context.Context, source, target string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("normalize audio: empty source path")
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-i", source,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-sample_fmt", "s16",
		target,
	}
	cmd := exec.CommandContext(ctx, FFmpegBinary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg normalize: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Available reports whether the ffmpeg binary can be found.
func Available() bool {
	_, err := exec.LookPath(FFmpegBinary)
	return err == nil
}
