package media

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadWaveform loads a normalized PCM WAV file into memory. It rejects
// files that are not mono 16 kHz 16-bit, which indicates the normalization
// precondition was violated upstream.
func ReadWaveform(path string) (*Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open waveform: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode waveform: %w", err)
	}
	if decoder.NumChans != 1 {
		return nil, fmt.Errorf("decode waveform: expected mono audio, got %d channels", decoder.NumChans)
	}
	if int(decoder.SampleRate) != SampleRate {
		return nil, fmt.Errorf("decode waveform: expected %d Hz, got %d", SampleRate, decoder.SampleRate)
	}
	if decoder.BitDepth != 16 {
		return nil, fmt.Errorf("decode waveform: expected 16-bit samples, got %d", decoder.BitDepth)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		samples[i] = int16(v)
	}
	return &Waveform{Samples: samples, SampleRate: SampleRate}, nil
}

// WriteChunk writes a sample window to path as a mono 16-bit PCM WAV.
func WriteChunk(path string, samples []int16, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk: %w", err)
	}

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		_ = file.Close()
		return fmt.Errorf("write chunk: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("finalize chunk: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close chunk: %w", err)
	}
	return nil
}
