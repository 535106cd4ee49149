package vocals

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lingoview/internal/logging"
)

// Separator runs Demucs two-stem separation with an on-disk cache.
type Separator struct {
	Executable string
	Model      string
	CacheDir   string
	logger     *slog.Logger
}

// New returns a Separator caching under cacheDir.
func New(executable, model, cacheDir string, logger *slog.Logger) *Separator {
	if executable == "" {
		executable = "demucs"
	}
	if model == "" {
		model = "htdemucs"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Separator{Executable: executable, Model: model, CacheDir: cacheDir, logger: logger}
}

// Available reports whether the Demucs executable can be resolved.
func (s *Separator) Available() bool {
	_, err := exec.LookPath(s.Executable)
	return err == nil
}

// Separate returns a vocals-only WAV for the given media. Cached output
// is keyed by the media file's content hash. On any separation failure
// the original path is returned so the pipeline degrades to the full mix.
func (s *Separator) Separate(ctx context.Context, mediaPath string) string {
	vocalsPath, err := s.separate(ctx, mediaPath)
	if err != nil {
		s.logger.Warn("vocal separation failed, using original audio",
			logging.String("media", mediaPath),
			logging.Error(err))
		return mediaPath
	}
	return vocalsPath
}

func (s *Separator) separate(ctx context.Context, mediaPath string) (string, error) {
	if err := os.MkdirAll(s.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create demucs cache dir: %w", err)
	}

	mediaHash, err := hashFile(mediaPath)
	if err != nil {
		return "", fmt.Errorf("hash media: %w", err)
	}

	cachedPath := filepath.Join(s.CacheDir, mediaHash+"-vocals.wav")
	if _, err := os.Stat(cachedPath); err == nil {
		s.logger.Debug("vocal separation cache hit", logging.String("path", cachedPath))
		return cachedPath, nil
	}

	tmpOutput := filepath.Join(s.CacheDir, "tmp-"+mediaHash)
	os.RemoveAll(tmpOutput)
	if err := os.MkdirAll(tmpOutput, 0o755); err != nil {
		return "", fmt.Errorf("create demucs work dir: %w", err)
	}
	defer os.RemoveAll(tmpOutput)

	args := []string{"--two-stems=vocals", "-n", s.Model, "-o", tmpOutput, mediaPath}
	cmd := exec.CommandContext(ctx, s.Executable, args...) //nolint:gosec

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 400 {
			detail = detail[:400]
		}
		return "", fmt.Errorf("demucs separation failed: %w (%s)", err, detail)
	}

	vocalsFile, err := findVocalsOutput(tmpOutput)
	if err != nil {
		return "", err
	}
	if err := moveFile(vocalsFile, cachedPath); err != nil {
		return "", fmt.Errorf("store separated vocals: %w", err)
	}
	return cachedPath, nil
}

// findVocalsOutput locates the vocals stem anywhere under the Demucs
// output tree; the directory layout depends on the model name.
func findVocalsOutput(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "vocals.") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan demucs output: %w", err)
	}
	if found == "" {
		return "", fmt.Errorf("demucs did not produce a vocals stem under %s", root)
	}
	return found, nil
}

// moveFile renames when possible and falls back to copy for cross-device
// moves.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
