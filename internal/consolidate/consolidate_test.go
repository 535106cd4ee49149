package consolidate

import (
	"testing"

	"lingoview/internal/transcribe"
)

func TestNormalizeOverlapText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "helloworld"},
		{"下回、ONE PIECE！", "下回onepiece"},
		{"  spaced  out  ", "spacedout"},
		{"…・-、。", ""},
	}
	for _, tt := range tests {
		if got := NormalizeOverlapText(tt.in); got != tt.want {
			t.Fatalf("NormalizeOverlapText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterDuplicatesNearIdenticalTiming(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "A", Language: "en"},
		{Start: 0.02, End: 1.03, Text: "A", Language: "en"},
	}
	got := filterDuplicates(fragments)
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %v", len(got), got)
	}
}

func TestFilterDuplicatesKeepsLongerText(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 10, End: 12, Text: "short", Language: "en"},
		{Start: 10.05, End: 12.1, Text: "short but longer", Language: "en"},
	}
	got := filterDuplicates(fragments)
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %v", len(got), got)
	}
	if got[0].Text != "short but longer" {
		t.Fatalf("expected longer text to win, got %q", got[0].Text)
	}
}

func TestFilterDuplicatesComparesCharacterCounts(t *testing.T) {
	// "one two" normalizes to 6 characters in 6 bytes; the CJK text has
	// 2 characters in the same 6 bytes. The character-wise longer text wins.
	fragments := []transcribe.Fragment{
		{Start: 4, End: 6, Text: "下回", Language: "ja"},
		{Start: 4.05, End: 6.05, Text: "one two", Language: "en"},
	}
	got := filterDuplicates(fragments)
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %v", len(got), got)
	}
	if got[0].Text != "one two" {
		t.Fatalf("expected the text with more characters to win, got %q", got[0].Text)
	}
}

func TestFilterDuplicatesSupersetSurvives(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 18.0, End: 19.0, Text: "下回", Language: "ja"},
		{Start: 18.0, End: 25.0, Text: "下回，一件，独裁乔巴的冒险病历。", Language: "ja"},
	}
	got := filterDuplicates(fragments)
	if len(got) != 1 {
		t.Fatalf("expected superset to absorb subset, got %v", got)
	}
	if got[0].Text != "下回，一件，独裁乔巴的冒险病历。" {
		t.Fatalf("expected superset text, got %q", got[0].Text)
	}
}

func TestFilterDuplicatesDisjointFragmentsKept(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "first", Language: "en"},
		{Start: 2, End: 3, Text: "second", Language: "en"},
	}
	got := filterDuplicates(fragments)
	if len(got) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(got))
	}
}

func TestMergeEnglishRunsJoinsUntilTerminator(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "Hello there", Language: "en"},
		{Start: 1, End: 2, Text: "my friend.", Language: "en"},
	}
	got := mergeEnglishRuns(fragments)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged fragment, got %d: %v", len(got), got)
	}
	if got[0].Text != "Hello there my friend." {
		t.Fatalf("unexpected merged text %q", got[0].Text)
	}
	if got[0].Start != 0 || got[0].End != 2 {
		t.Fatalf("expected span [0,2], got [%v,%v]", got[0].Start, got[0].End)
	}
}

func TestMergeEnglishRunsFlushesOnJapanese(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "Unfinished english", Language: "en"},
		{Start: 1, End: 2, Text: "こんにちは", Language: "ja"},
	}
	got := mergeEnglishRuns(fragments)
	if len(got) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %v", len(got), got)
	}
	if got[0].Text != "Unfinished english" {
		t.Fatalf("expected buffered text flushed first, got %q", got[0].Text)
	}
	if got[1].Text != "こんにちは" {
		t.Fatalf("expected japanese fragment second, got %q", got[1].Text)
	}
}

func TestMergeEnglishRunsTerminatorWithClosingQuote(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: `He said "stop!"`, Language: "en"},
		{Start: 1, End: 2, Text: "Then he left.", Language: "en"},
	}
	got := mergeEnglishRuns(fragments)
	if len(got) != 2 {
		t.Fatalf("expected quote-terminated sentence to flush, got %v", got)
	}
}

func TestMergeEnglishRunsUndeterminedLatinText(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "maybe english", Language: "und"},
		{Start: 1, End: 2, Text: "yes it is.", Language: "en"},
	}
	got := mergeEnglishRuns(fragments)
	if len(got) != 1 {
		t.Fatalf("expected merged run, got %v", got)
	}
	if got[0].Text != "maybe english yes it is." {
		t.Fatalf("unexpected merged text %q", got[0].Text)
	}
}

func TestConsolidateOverridesDominantLanguage(t *testing.T) {
	fragments := []transcribe.Fragment{
		{Start: 0, End: 1, Text: "こんにちは。", Language: "ja"},
		{Start: 2, End: 3, Text: "Hello.", Language: "en"},
	}
	got, dominant := Consolidate(fragments)
	if dominant != "ja" {
		t.Fatalf("expected dominant ja, got %q", dominant)
	}
	for _, frag := range got {
		if frag.Language != "ja" {
			t.Fatalf("expected all fragments tagged ja, got %v", got)
		}
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	got, dominant := Consolidate(nil)
	if len(got) != 0 {
		t.Fatalf("expected no fragments, got %v", got)
	}
	if dominant != "ja" {
		t.Fatalf("expected default dominant ja, got %q", dominant)
	}
}
