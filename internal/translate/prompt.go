package translate

import (
	"fmt"
	"strings"
)

// composePrompts builds the system and user prompts for one subtitle.
// Neighboring subtitles are passed as context only; the instructions keep
// the model from echoing them into the answer.
func composePrompts(text, targetLanguage, sourceLanguage string, tc Context) (string, string) {
	systemParts := []string{
		"You are a professional subtitle translator.",
		"Translate the subtitle while preserving intent, register, speaker style, and timing cues.",
		"Keep line length natural for subtitles and retain key punctuation unless the language requires changes.",
		"Only translate the text labelled 'Current subtitle'. Do not repeat or paraphrase the previous or next subtitles in your answer.",
	}
	if sourceLanguage != "" && sourceLanguage != "und" {
		systemParts = append(systemParts, fmt.Sprintf("The detected source language is %s.", sourceLanguage))
	}
	if tc.Title != "" {
		systemParts = append(systemParts, fmt.Sprintf("The video title is %q; use it to resolve proper nouns and domain references.", tc.Title))
	}
	if tc.PreviousText != "" || tc.NextText != "" {
		systemParts = append(systemParts, "You may reference the surrounding subtitles to resolve terminology, but never include them in the output.")
	}
	systemParts = append(systemParts, "Do not invent new facts; reply with only the translated current subtitle text as a single line.")

	userLines := []string{fmt.Sprintf("Target language: %s", targetLanguage)}
	if tc.TotalSegments > 0 {
		userLines = append(userLines, fmt.Sprintf("Current segment index: %d of %d.", tc.SegmentIndex+1, tc.TotalSegments))
	}
	if tc.PreviousText != "" {
		userLines = append(userLines, fmt.Sprintf("Previous subtitle (context only, do not translate): %s", tc.PreviousText))
	}
	userLines = append(userLines, fmt.Sprintf("Current subtitle (translate this only): %s", text))
	if tc.NextText != "" {
		userLines = append(userLines, fmt.Sprintf("Next subtitle (context only, do not translate): %s", tc.NextText))
	}
	userLines = append(userLines, "Produce a fluent translation for the current subtitle only. Do not add extra sentences or repeat neighbouring subtitles.")

	return strings.Join(systemParts, " "), strings.Join(userLines, "\n")
}
