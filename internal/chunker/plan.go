package chunker

import (
	"math"

	"lingoview/internal/vad"
)

const (
	// smallGapSeconds is the silence below which adjacent speech merges.
	smallGapSeconds = 0.5
	// largeGapSeconds is the silence up to which padded chunks split at
	// the gap midpoint instead of overlapping.
	largeGapSeconds = 1.0
	// paddingSeconds of context kept on each side of a speech region.
	paddingSeconds = 0.6
	// minOverlapSeconds is the floor applied to the configured overlap.
	minOverlapSeconds = 0.75
)

// span is a padded speech region awaiting the window walk.
type span struct {
	speechStart float64
	speechEnd   float64
	chunkStart  float64
	chunkEnd    float64
}

// window is one bounded slice of a span, expressed in seconds before
// sample quantization.
type window struct {
	start       float64
	end         float64
	speechStart float64
	speechEnd   float64
}

// buildSpans merges close intervals, pads them, and splits moderate gaps
// at the midpoint. An empty detection falls back to one span covering the
// whole recording.
func buildSpans(intervals []vad.SpeechInterval, duration float64) []span {
	var spans []span
	for _, iv := range intervals {
		start := iv.StartSeconds()
		end := math.Min(duration, iv.EndSeconds())
		if end <= start {
			continue
		}
		if len(spans) > 0 && start-spans[len(spans)-1].speechEnd <= smallGapSeconds {
			previous := &spans[len(spans)-1]
			previous.speechEnd = math.Max(previous.speechEnd, end)
			continue
		}
		spans = append(spans, span{speechStart: start, speechEnd: end})
	}

	if len(spans) == 0 {
		spans = []span{{speechStart: 0, speechEnd: duration}}
	}

	for i := range spans {
		spans[i].chunkStart = math.Max(0, spans[i].speechStart-paddingSeconds)
		spans[i].chunkEnd = math.Min(duration, spans[i].speechEnd+paddingSeconds)
	}

	for i := 0; i < len(spans)-1; i++ {
		current := &spans[i]
		next := &spans[i+1]
		gap := next.speechStart - current.speechEnd
		if gap <= 0 || gap > largeGapSeconds {
			continue
		}
		splitPoint := current.speechEnd + gap/2
		current.chunkEnd = math.Min(current.chunkEnd, splitPoint)
		next.chunkStart = math.Max(next.chunkStart, splitPoint)
	}

	return spans
}

// walkWindows slices a span into windows no longer than maxChunkSeconds
// plus overlap on each side, advancing by maxChunkSeconds per step so the
// overlap audio appears in both neighbors.
func walkWindows(s span, maxChunkSeconds, overlapSeconds float64) []window {
	if s.chunkEnd-s.chunkStart <= 0 {
		return nil
	}
	maxChunkSeconds = math.Max(1, maxChunkSeconds)
	overlap := math.Max(math.Max(0, overlapSeconds), minOverlapSeconds)

	var windows []window
	currentStart := s.chunkStart
	for currentStart < s.chunkEnd {
		segmentLimit := math.Min(s.chunkEnd, currentStart+maxChunkSeconds)
		windows = append(windows, window{
			start:       math.Max(s.chunkStart, currentStart-overlap),
			end:         math.Min(s.chunkEnd, segmentLimit+overlap),
			speechStart: s.speechStart,
			speechEnd:   s.speechEnd,
		})
		currentStart = segmentLimit
	}
	return windows
}
