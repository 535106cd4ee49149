package transcribe

import (
	"context"
	"math"
	"sort"
	"strings"

	"lingoview/internal/chunker"
)

const (
	// LanguageUnknown marks fragments whose language the backend could
	// not identify.
	LanguageUnknown = "und"

	// boundaryToleranceSeconds is how far a fragment may extend past a
	// chunk's speech window before it is treated as a hallucination.
	boundaryToleranceSeconds = 0.2
	// minFragmentSeconds is the floor on a clamped fragment's duration.
	minFragmentSeconds = 0.05
)

// Fragment is one transcribed piece of audio. Times are seconds; the
// backend reports them relative to the chunk, the dispatcher rebases them
// onto the recording timeline.
type Fragment struct {
	Start    float64
	End      float64
	Text     string
	Language string
}

// ChunkTranscriber transcribes a single chunk file. Fragment times are
// relative to the start of the file.
type ChunkTranscriber interface {
	TranscribeChunk(ctx context.Context, path string) ([]Fragment, error)
}

// rebase shifts chunk-relative fragments onto the recording timeline,
// discards fragments clearly outside the chunk's speech window, and clamps
// the survivors to the chunk bounds with a minimum duration.
func rebase(chunk chunker.Chunk, fragments []Fragment) []Fragment {
	var out []Fragment
	for _, frag := range fragments {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}

		absoluteStart := chunk.Start + frag.Start
		absoluteEnd := chunk.Start + frag.End
		if absoluteEnd < chunk.SpeechStart-boundaryToleranceSeconds {
			continue
		}
		if absoluteStart > chunk.SpeechEnd+boundaryToleranceSeconds {
			continue
		}

		start := math.Max(chunk.Start, absoluteStart)
		end := math.Min(chunk.End, absoluteEnd)
		end = math.Max(end, start+minFragmentSeconds)

		language := frag.Language
		if language == "" {
			language = LanguageUnknown
		}
		out = append(out, Fragment{Start: start, End: end, Text: text, Language: language})
	}
	return out
}

// fillUnknownLanguages replaces "und" tags with the most common language
// seen across the fragments.
func fillUnknownLanguages(fragments []Fragment) {
	counts := make(map[string]int)
	for _, frag := range fragments {
		counts[frag.Language]++
	}
	dominant := LanguageUnknown
	best := 0
	for language, count := range counts {
		if language == LanguageUnknown {
			continue
		}
		if count > best {
			dominant, best = language, count
		}
	}
	if dominant == LanguageUnknown {
		return
	}
	for i := range fragments {
		if fragments[i].Language == LanguageUnknown {
			fragments[i].Language = dominant
		}
	}
}

func sortFragments(fragments []Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].Start < fragments[j].Start
	})
}
