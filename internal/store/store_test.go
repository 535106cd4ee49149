package store

import (
	"context"
	"path/filepath"
	"testing"

	"lingoview/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StorageDir = filepath.Join(dir, "storage")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	return &cfg
}

func openStore(t *testing.T, cfg *config.Config) *Store {
	t.Helper()
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openStore(t, testConfig(t))
	ctx := context.Background()

	first, err := s.RecordRun(ctx, Run{
		Media:        "a.mp4",
		SourceHash:   "hash-a",
		Language:     "ja",
		SegmentCount: 12,
		MetadataPath: "/tmp/a.metadata.json",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	second, err := s.RecordRun(ctx, Run{
		Media:               "b.mp4",
		SourceHash:          "hash-b",
		Language:            "en",
		TranslationLanguage: "ja",
		SegmentCount:        3,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}

	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Media != "b.mp4" {
		t.Fatalf("expected newest first, got %+v", runs[0])
	}
	if runs[0].TranslationLanguage != "ja" || runs[1].SegmentCount != 12 {
		t.Fatalf("unexpected run data: %+v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at round trip")
	}
}

func TestFindRun(t *testing.T) {
	s := openStore(t, testConfig(t))
	ctx := context.Background()

	if _, err := s.RecordRun(ctx, Run{Media: "a.mp4", SourceHash: "h", Language: "ja"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := s.RecordRun(ctx, Run{Media: "a.mp4", SourceHash: "h", Language: "ja", TranslationLanguage: "en"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	run, err := s.FindRun(ctx, "h", "en")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if run == nil || run.TranslationLanguage != "en" {
		t.Fatalf("expected translated run, got %+v", run)
	}

	run, err = s.FindRun(ctx, "h", "")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if run == nil || run.TranslationLanguage != "" {
		t.Fatalf("expected untranslated run, got %+v", run)
	}

	run, err = s.FindRun(ctx, "missing", "")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if run != nil {
		t.Fatalf("expected no match, got %+v", run)
	}
}

func TestRecentRunsLimit(t *testing.T) {
	s := openStore(t, testConfig(t))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.RecordRun(ctx, Run{Media: "m.mp4", SourceHash: "h", Language: "ja"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	runs, err := s.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}
