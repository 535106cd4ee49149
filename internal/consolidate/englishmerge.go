package consolidate

import (
	"regexp"
	"strings"

	"lingoview/internal/language"
	"lingoview/internal/transcribe"
)

var englishTerminalRe = regexp.MustCompile(`[.!?…]+["'”’)\]]*\s*\z`)

// runBuffer accumulates consecutive English-like fragments until a
// sentence terminator closes the run.
type runBuffer struct {
	parts    []string
	start    float64
	end      float64
	language string
}

func (b *runBuffer) active() bool {
	return len(b.parts) > 0
}

func (b *runBuffer) add(frag transcribe.Fragment, text string) {
	if !b.active() {
		b.start = frag.Start
		b.language = frag.Language
		if b.language == "" {
			b.language = language.English
		}
	}
	b.parts = append(b.parts, text)
	b.end = frag.End
}

func (b *runBuffer) flush() (transcribe.Fragment, bool) {
	if !b.active() {
		return transcribe.Fragment{}, false
	}
	merged := transcribe.Fragment{
		Start:    b.start,
		End:      b.end,
		Text:     strings.Join(b.parts, " "),
		Language: b.language,
	}
	*b = runBuffer{}
	return merged, true
}

// mergeEnglishRuns rejoins English sentences split across an utterance
// pause. English-like fragments buffer until one ends with a sentence
// terminator; any other fragment flushes the buffer as-is and passes
// through unchanged.
func mergeEnglishRuns(fragments []transcribe.Fragment) []transcribe.Fragment {
	if len(fragments) == 0 {
		return nil
	}

	var (
		merged []transcribe.Fragment
		buffer runBuffer
	)

	for _, frag := range fragments {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}

		if isEnglishLike(frag.Language, text) {
			buffer.add(frag, text)
			if sentenceComplete(text) {
				if flushed, ok := buffer.flush(); ok {
					merged = append(merged, flushed)
				}
			}
			continue
		}

		if flushed, ok := buffer.flush(); ok {
			merged = append(merged, flushed)
		}
		merged = append(merged, frag)
	}

	if flushed, ok := buffer.flush(); ok {
		merged = append(merged, flushed)
	}
	return merged
}

// isEnglishLike matches fragments tagged English, or untagged ones whose
// text contains a Latin letter.
func isEnglishLike(tag, text string) bool {
	lower := strings.ToLower(tag)
	if strings.HasPrefix(lower, "en") {
		return true
	}
	if lower == "" || strings.HasPrefix(lower, "und") {
		return language.ContainsLatin(text)
	}
	return false
}

func sentenceComplete(text string) bool {
	return englishTerminalRe.MatchString(strings.TrimSpace(text))
}
