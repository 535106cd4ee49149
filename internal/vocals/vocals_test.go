package vocals

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSeparateUsesCachedOutput(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "input.wav")
	if err := os.WriteFile(mediaPath, []byte("media bytes"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	hash, err := hashFile(mediaPath)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cacheDir := filepath.Join(dir, "demucs")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cached := filepath.Join(cacheDir, hash+"-vocals.wav")
	if err := os.WriteFile(cached, []byte("vocals"), 0o644); err != nil {
		t.Fatalf("write cached: %v", err)
	}

	s := New("definitely-not-demucs", "htdemucs", cacheDir, nil)
	got := s.Separate(context.Background(), mediaPath)
	if got != cached {
		t.Fatalf("expected cached path %s, got %s", cached, got)
	}
}

func TestSeparateFallsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "input.wav")
	if err := os.WriteFile(mediaPath, []byte("media bytes"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	s := New("definitely-not-demucs", "htdemucs", filepath.Join(dir, "demucs"), nil)
	got := s.Separate(context.Background(), mediaPath)
	if got != mediaPath {
		t.Fatalf("expected fallback to original media, got %s", got)
	}
}

func TestFindVocalsOutput(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "htdemucs", "input")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"no_vocals.wav", "vocals.wav"} {
		if err := os.WriteFile(filepath.Join(nested, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	got, err := findVocalsOutput(root)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if filepath.Base(got) != "vocals.wav" {
		t.Fatalf("expected vocals.wav, got %s", got)
	}
}

func TestFindVocalsOutputMissing(t *testing.T) {
	if _, err := findVocalsOutput(t.TempDir()); err == nil {
		t.Fatal("expected error when no vocals stem exists")
	}
}

func TestHashFileStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := hashFile(path)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hashFile(path)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first != second || len(first) != 64 {
		t.Fatalf("unexpected hashes %q %q", first, second)
	}
}
