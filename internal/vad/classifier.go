package vad

import (
	"encoding/binary"

	"lingoview/internal/media"
)

// EnergyThreshold is the mean absolute amplitude (±32768 PCM scale) above
// which a frame counts as speech even when the VAD reports silence.
const EnergyThreshold = 400.0

// FrameClassifier decides whether one frame of samples contains speech.
type FrameClassifier interface {
	IsSpeech(frame []int16, sampleRate int) bool
}

// Classifier combines WebRTC VAD with the energy override.
type Classifier struct {
	vad *processor
}

// NewClassifier constructs the WebRTC-backed classifier. It fails when the
// VAD cannot be initialized (e.g. cgo-disabled builds).
func NewClassifier() (*Classifier, error) {
	p, err := newProcessor()
	if err != nil {
		return nil, err
	}
	return &Classifier{vad: p}, nil
}

// IsSpeech reports whether the frame contains speech. VAD errors on
// malformed frames are treated as silence, leaving the energy override as
// the only signal.
func (c *Classifier) IsSpeech(frame []int16, sampleRate int) bool {
	speech, err := c.vad.Process(sampleRate, frameBytes(frame))
	if err != nil {
		speech = false
	}
	if !speech && media.MeanAbsAmplitude(frame) > EnergyThreshold {
		speech = true
	}
	return speech
}

func frameBytes(frame []int16) []byte {
	out := make([]byte, len(frame)*2)
	for i, s := range frame {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
