package exports

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"lingoview/internal/segment"
)

// FormatTimestamp renders seconds as an SRT timestamp, HH:MM:SS,mmm.
func FormatTimestamp(value float64) string {
	if value < 0 {
		value = 0
	}
	totalMillis := int64(math.Round(value * 1000))
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	seconds := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// BuildSRT renders segments as SubRip text.
func BuildSRT(segments []segment.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			text = "…"
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, FormatTimestamp(seg.Start), FormatTimestamp(seg.End), text)
	}
	return strings.TrimSpace(b.String()) + "\n"
}

type jsonPayload struct {
	Language string            `json:"language"`
	Segments []segment.Segment `json:"segments"`
}

// BuildJSON renders either the original or the translated side of a
// result as indented JSON.
func BuildJSON(result segment.Result, useTranslation bool) (string, error) {
	payload := jsonPayload{Language: result.Language, Segments: result.Segments}
	if useTranslation {
		payload.Language = result.TranslationLanguage
		payload.Segments = result.TranslatedSegments
	}
	if payload.Segments == nil {
		payload.Segments = []segment.Segment{}
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode subtitle json: %w", err)
	}
	return string(encoded), nil
}
