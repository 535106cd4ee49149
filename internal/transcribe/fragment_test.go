package transcribe

import (
	"math"
	"testing"

	"lingoview/internal/chunker"
)

func TestRebaseShiftsAndClamps(t *testing.T) {
	chunk := chunker.Chunk{Start: 10, End: 20, SpeechStart: 11, SpeechEnd: 19}
	got := rebase(chunk, []Fragment{
		{Start: 1.5, End: 3.0, Text: " hello ", Language: "en"},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(got))
	}
	if got[0].Start != 11.5 || got[0].End != 13.0 {
		t.Fatalf("expected [11.5,13.0], got [%v,%v]", got[0].Start, got[0].End)
	}
	if got[0].Text != "hello" {
		t.Fatalf("expected trimmed text, got %q", got[0].Text)
	}
}

func TestRebaseDropsFragmentsOutsideSpeechWindow(t *testing.T) {
	chunk := chunker.Chunk{Start: 0, End: 10, SpeechStart: 3, SpeechEnd: 7}
	got := rebase(chunk, []Fragment{
		{Start: 0.0, End: 2.5, Text: "before speech", Language: "en"},
		{Start: 3.0, End: 4.0, Text: "inside", Language: "en"},
		{Start: 7.5, End: 9.0, Text: "after speech", Language: "en"},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving fragment, got %d: %v", len(got), got)
	}
	if got[0].Text != "inside" {
		t.Fatalf("expected the in-window fragment, got %q", got[0].Text)
	}
}

func TestRebaseKeepsFragmentsWithinTolerance(t *testing.T) {
	chunk := chunker.Chunk{Start: 0, End: 10, SpeechStart: 3, SpeechEnd: 7}
	got := rebase(chunk, []Fragment{
		{Start: 2.0, End: 2.9, Text: "just before", Language: "en"},
		{Start: 7.1, End: 8.0, Text: "just after", Language: "en"},
	})
	if len(got) != 2 {
		t.Fatalf("expected both tolerance fragments, got %d: %v", len(got), got)
	}
}

func TestRebaseEnforcesMinimumDuration(t *testing.T) {
	chunk := chunker.Chunk{Start: 0, End: 10, SpeechStart: 0, SpeechEnd: 10}
	got := rebase(chunk, []Fragment{
		{Start: 5.0, End: 5.0, Text: "blip", Language: "en"},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(got))
	}
	if math.Abs(got[0].End-got[0].Start-minFragmentSeconds) > 1e-9 {
		t.Fatalf("expected minimum duration, got %v", got[0].End-got[0].Start)
	}
}

func TestRebaseClampsToChunkBounds(t *testing.T) {
	chunk := chunker.Chunk{Start: 10, End: 20, SpeechStart: 10, SpeechEnd: 20}
	got := rebase(chunk, []Fragment{
		{Start: -1.0, End: 11.0, Text: "overflow", Language: "en"},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(got))
	}
	if got[0].Start != 10 || got[0].End != 20 {
		t.Fatalf("expected clamped [10,20], got [%v,%v]", got[0].Start, got[0].End)
	}
}

func TestRebaseDropsEmptyTextAndDefaultsLanguage(t *testing.T) {
	chunk := chunker.Chunk{Start: 0, End: 10, SpeechStart: 0, SpeechEnd: 10}
	got := rebase(chunk, []Fragment{
		{Start: 1, End: 2, Text: "   ", Language: "en"},
		{Start: 2, End: 3, Text: "kept", Language: ""},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(got))
	}
	if got[0].Language != LanguageUnknown {
		t.Fatalf("expected %q language, got %q", LanguageUnknown, got[0].Language)
	}
}

func TestFillUnknownLanguages(t *testing.T) {
	fragments := []Fragment{
		{Text: "a", Language: "ja"},
		{Text: "b", Language: "und"},
		{Text: "c", Language: "ja"},
		{Text: "d", Language: "en"},
	}
	fillUnknownLanguages(fragments)
	if fragments[1].Language != "ja" {
		t.Fatalf("expected dominant language ja, got %q", fragments[1].Language)
	}
}

func TestFillUnknownLanguagesAllUnknown(t *testing.T) {
	fragments := []Fragment{{Text: "a", Language: "und"}}
	fillUnknownLanguages(fragments)
	if fragments[0].Language != "und" {
		t.Fatalf("expected und to survive, got %q", fragments[0].Language)
	}
}
