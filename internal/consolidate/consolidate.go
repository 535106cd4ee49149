package consolidate

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"lingoview/internal/language"
	"lingoview/internal/transcribe"
)

// duplicateToleranceSeconds is the start/end slack within which two
// fragments from overlapping chunks count as the same utterance.
const duplicateToleranceSeconds = 0.15

var overlapCleanupRe = regexp.MustCompile(`[\s　、。，．！？!?,…・\-]+`)

// NormalizeOverlapText strips whitespace and common CJK and Latin
// punctuation and lowercases the rest, so overlapping transcriptions of
// the same audio compare equal despite punctuation drift.
func NormalizeOverlapText(value string) string {
	return strings.ToLower(overlapCleanupRe.ReplaceAllString(value, ""))
}

// Consolidate runs the full reconciliation pass and returns the cleaned
// fragments plus the dominant language every fragment is tagged with.
func Consolidate(fragments []transcribe.Fragment) ([]transcribe.Fragment, string) {
	normalized := normalizeLanguages(fragments)
	dominant := dominantLanguage(normalized)
	filtered := filterDuplicates(normalized)
	merged := mergeEnglishRuns(filtered)
	for i := range merged {
		merged[i].Language = dominant
	}
	return merged, dominant
}

func normalizeLanguages(fragments []transcribe.Fragment) []transcribe.Fragment {
	out := make([]transcribe.Fragment, len(fragments))
	for i, frag := range fragments {
		frag.Language = language.Resolve(frag.Language, frag.Text)
		out[i] = frag
	}
	return out
}

func dominantLanguage(fragments []transcribe.Fragment) string {
	tags := make([]string, len(fragments))
	for i, frag := range fragments {
		tags[i] = frag.Language
	}
	return language.Dominant(tags)
}

// filterDuplicates sorts by (start, end) and collapses fragments that
// re-transcribe the same overlapped window. Near-identical spans keep the
// longer text; temporally overlapping substrings keep the superset.
func filterDuplicates(fragments []transcribe.Fragment) []transcribe.Fragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]transcribe.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var kept []transcribe.Fragment
	for _, frag := range sorted {
		if len(kept) == 0 {
			kept = append(kept, frag)
			continue
		}
		prev := &kept[len(kept)-1]
		sameStart := abs(prev.Start-frag.Start) < duplicateToleranceSeconds
		sameEnd := abs(prev.End-frag.End) < duplicateToleranceSeconds
		prevText := strings.TrimSpace(prev.Text)
		currText := strings.TrimSpace(frag.Text)
		prevNorm := NormalizeOverlapText(prevText)
		currNorm := NormalizeOverlapText(currText)

		if sameStart && sameEnd {
			// Character count, not byte length: mixed-script texts
			// must not lose to shorter CJK strings with wider encodings.
			if utf8.RuneCountInString(currNorm) > utf8.RuneCountInString(prevNorm) {
				*prev = frag
			}
			continue
		}

		if frag.Start < prev.End {
			switch {
			case currNorm != "" && strings.Contains(prevNorm, currNorm):
				continue
			case prevNorm != "" && strings.Contains(currNorm, prevNorm):
				*prev = frag
				continue
			case currText != "" && strings.Contains(prevText, currText):
				continue
			case prevText != "" && strings.Contains(currText, prevText):
				*prev = frag
				continue
			}
		}

		kept = append(kept, frag)
	}
	return kept
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
