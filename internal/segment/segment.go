package segment

import (
	"sort"
	"strings"
	"unicode/utf8"

	"lingoview/internal/consolidate"
	"lingoview/internal/tokenize"
)

// finalToleranceSeconds is the start/end slack for the final dedup pass.
const finalToleranceSeconds = 0.05

// Segment is one finished subtitle entry.
type Segment struct {
	Start  float64          `json:"start"`
	End    float64          `json:"end"`
	Text   string           `json:"text"`
	Tokens []tokenize.Token `json:"tokens,omitempty"`
}

// Result is the pipeline's output: ordered segments, the dominant source
// language, and optionally a parallel translated list.
type Result struct {
	Segments            []Segment `json:"segments"`
	Language            string    `json:"language"`
	TranslatedSegments  []Segment `json:"translated_segments,omitempty"`
	TranslationLanguage string    `json:"translation_language,omitempty"`
}

// Sort orders segments by (start, end) and permutes the translated list
// identically. Translated entries whose original index falls beyond the
// translated list's length are dropped rather than erroring.
func Sort(segments, translated []Segment) ([]Segment, []Segment) {
	if len(segments) == 0 {
		return segments, translated
	}

	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if segments[i].Start != segments[j].Start {
			return segments[i].Start < segments[j].Start
		}
		return segments[i].End < segments[j].End
	})

	sorted := make([]Segment, len(segments))
	for pos, idx := range order {
		sorted[pos] = segments[idx]
	}

	if translated == nil {
		return sorted, nil
	}
	sortedTranslated := make([]Segment, 0, len(translated))
	for _, idx := range order {
		if idx < len(translated) {
			sortedTranslated = append(sortedTranslated, translated[idx])
		}
	}
	return sorted, sortedTranslated
}

// Deduplicate collapses near-identical neighbors in a sorted segment
// list, keeping the translated list aligned. A candidate that matches the
// last kept segment's timing within tolerance, or temporally overlaps it
// with substring-equivalent text, replaces or is absorbed by it; anything
// else is appended.
func Deduplicate(segments, translated []Segment) ([]Segment, []Segment) {
	if len(segments) == 0 {
		return segments, translated
	}

	var kept []Segment
	var keptTranslated []Segment
	trackTranslated := translated != nil

	for idx, seg := range segments {
		if len(kept) > 0 {
			prev := kept[len(kept)-1]
			sameStart := abs(prev.Start-seg.Start) < finalToleranceSeconds
			sameEnd := abs(prev.End-seg.End) < finalToleranceSeconds
			prevText := strings.TrimSpace(prev.Text)
			currText := strings.TrimSpace(seg.Text)
			prevNorm := consolidate.NormalizeOverlapText(prevText)
			currNorm := consolidate.NormalizeOverlapText(currText)
			redundant := prevText == currText ||
				(currText != "" && strings.Contains(prevText, currText)) ||
				(prevText != "" && strings.Contains(currText, prevText)) ||
				(currNorm != "" && strings.Contains(prevNorm, currNorm)) ||
				(prevNorm != "" && strings.Contains(currNorm, prevNorm))

			if sameStart && (sameEnd || seg.End >= prev.End) {
				if seg.End >= prev.End && utf8.RuneCountInString(currText) >= utf8.RuneCountInString(prevText) {
					kept[len(kept)-1] = seg
					if trackTranslated && idx < len(translated) && len(keptTranslated) > 0 {
						keptTranslated[len(keptTranslated)-1] = translated[idx]
					}
				}
				continue
			}

			if seg.Start < prev.End && redundant {
				if utf8.RuneCountInString(currText) > utf8.RuneCountInString(prevText) {
					kept[len(kept)-1] = seg
					if trackTranslated && idx < len(translated) && len(keptTranslated) > 0 {
						keptTranslated[len(keptTranslated)-1] = translated[idx]
					}
				}
				continue
			}
		}

		kept = append(kept, seg)
		if trackTranslated && idx < len(translated) {
			keptTranslated = append(keptTranslated, translated[idx])
		}
	}

	if !trackTranslated {
		return kept, nil
	}
	return kept, keptTranslated
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
