package language

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

// Japanese and English are the only codes the reconciliation pipeline emits.
const (
	Japanese = "ja"
	English  = "en"
)

// Resolve normalizes a detected language tag to "ja" or "en". Tags that
// mention neither are resolved by inspecting the text: any CJK codepoint
// selects Japanese, any Latin letter selects English, and everything else
// defaults to Japanese. The result is never empty.
func Resolve(detected, text string) string {
	value := strings.ToLower(strings.TrimSpace(detected))
	if strings.Contains(value, Japanese) {
		return Japanese
	}
	if strings.Contains(value, English) {
		return English
	}
	if ContainsCJK(text) {
		return Japanese
	}
	if ContainsLatin(text) {
		return English
	}
	return Japanese
}

// Dominant returns the language the whole result is normalized to: the
// first tag in order that is already "ja" or "en", defaulting to Japanese.
func Dominant(tags []string) string {
	for _, tag := range tags {
		if tag == Japanese || tag == English {
			return tag
		}
	}
	return Japanese
}

// ContainsCJK reports whether text contains any Hiragana, Katakana, or CJK
// Unified Ideograph codepoint.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// ContainsLatin reports whether text contains any ASCII Latin letter.
func ContainsLatin(text string) bool {
	for _, r := range text {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x30FF: // Hiragana + Katakana
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	}
	return false
}

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "japanese")
}

var languages = []entry{
	{"ja", "Japanese", []string{"japanese"}},
	{"en", "English", []string{"english"}},
	{"zh", "Chinese", []string{"chinese", "mandarin"}},
	{"ko", "Korean", []string{"korean"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"it", "Italian", []string{"italian"}},
	{"ru", "Russian", []string{"russian"}},
}

var (
	byCode2 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// NormalizeTarget converts a user-supplied target language (code or word)
// to a lowercase 2-letter code, passing unknown short codes through.
func NormalizeTarget(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if e := lookup(value); e != nil {
		return e.code2
	}
	trimmed := strings.TrimFunc(value, func(r rune) bool { return !unicode.IsLetter(r) })
	if len(trimmed) == 2 {
		return trimmed
	}
	return value
}

// DisplayName returns a human-readable name for any recognized code,
// title-casing unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return cases.Title(xlang.Und).String(strings.TrimSpace(code))
}
