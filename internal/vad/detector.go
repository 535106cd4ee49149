package vad

import "lingoview/internal/media"

const (
	// FrameDurationMs is the analysis frame length required by WebRTC VAD.
	FrameDurationMs = 30
	// MinSpeechFrames is the shortest run (300 ms) accepted as speech.
	MinSpeechFrames = 10
	// MinSilenceFrames is the silence run (450 ms) that closes an interval.
	MinSilenceFrames = 15
)

// SpeechInterval is a half-open frame range [StartFrame, EndFrame) that
// was classified as containing active speech.
type SpeechInterval struct {
	StartFrame int
	EndFrame   int
}

// StartSeconds returns the interval start in seconds.
func (s SpeechInterval) StartSeconds() float64 {
	return float64(s.StartFrame) * float64(FrameDurationMs) / 1000.0
}

// EndSeconds returns the interval end in seconds.
func (s SpeechInterval) EndSeconds() float64 {
	return float64(s.EndFrame) * float64(FrameDurationMs) / 1000.0
}

// Detector coalesces per-frame speech decisions into intervals.
type Detector struct {
	classifier       FrameClassifier
	minSpeechFrames  int
	minSilenceFrames int
}

// NewDetector returns a Detector with the default hysteresis thresholds.
func NewDetector(classifier FrameClassifier) *Detector {
	return &Detector{
		classifier:       classifier,
		minSpeechFrames:  MinSpeechFrames,
		minSilenceFrames: MinSilenceFrames,
	}
}

// Detect walks the waveform frame by frame and returns time-ordered,
// non-overlapping speech intervals. Runs shorter than the speech minimum
// are discarded as noise. A trailing partial frame is ignored. The result
// may be empty; callers decide how to treat a silent recording.
func (d *Detector) Detect(w *media.Waveform) []SpeechInterval {
	if w == nil || w.SampleRate <= 0 {
		return nil
	}
	frameSize := w.SampleRate * FrameDurationMs / 1000
	if frameSize <= 0 {
		return nil
	}
	totalFrames := len(w.Samples) / frameSize

	var intervals []SpeechInterval
	startFrame := -1
	silenceRun := 0

	for frame := 0; frame < totalFrames; frame++ {
		samples := w.Samples[frame*frameSize : (frame+1)*frameSize]
		if d.classifier.IsSpeech(samples, w.SampleRate) {
			silenceRun = 0
			if startFrame < 0 {
				startFrame = frame
			}
			continue
		}
		if startFrame < 0 {
			silenceRun = 0
			continue
		}
		silenceRun++
		if silenceRun >= d.minSilenceFrames {
			// Trim the silence tail off the closed interval.
			endFrame := frame - d.minSilenceFrames + 1
			if endFrame-startFrame >= d.minSpeechFrames {
				intervals = append(intervals, SpeechInterval{StartFrame: startFrame, EndFrame: endFrame})
			}
			startFrame = -1
			silenceRun = 0
		}
	}

	if startFrame >= 0 && totalFrames-startFrame >= d.minSpeechFrames {
		intervals = append(intervals, SpeechInterval{StartFrame: startFrame, EndFrame: totalFrames})
	}

	return intervals
}
