package media

// SampleRate is the fixed analysis sample rate in Hz.
const SampleRate = 16000

// Waveform holds a normalized mono 16 kHz 16-bit PCM recording. It is
// immutable once decoded; every downstream stage reads sub-slices only.
type Waveform struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the recording length in seconds.
func (w *Waveform) Duration() float64 {
	if w == nil || w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Slice returns the samples in [start, end), clamped to the waveform bounds.
func (w *Waveform) Slice(start, end int) []int16 {
	if w == nil {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end > len(w.Samples) {
		end = len(w.Samples)
	}
	if end <= start {
		return nil
	}
	return w.Samples[start:end]
}

// MeanAbsAmplitude returns the mean absolute amplitude of a sample window
// on the ±32768 PCM scale.
func MeanAbsAmplitude(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum / float64(len(samples))
}
