package chunker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"lingoview/internal/logging"
	"lingoview/internal/media"
	"lingoview/internal/vad"
)

// Chunk is one WAV slice of the source recording. Start and End are the
// exact sample-aligned bounds within the original timeline; SpeechStart
// and SpeechEnd bound the detected speech inside the chunk.
type Chunk struct {
	Path        string
	Index       int
	Start       float64
	End         float64
	SpeechStart float64
	SpeechEnd   float64
}

// Options controls chunking behavior.
type Options struct {
	EnableVAD       bool
	MaxChunkSeconds float64
	OverlapSeconds  float64
}

// Chunker normalizes a recording and splits it into chunk files.
type Chunker struct {
	opts       Options
	classifier vad.FrameClassifier
	logger     *slog.Logger
}

// New returns a Chunker using the given frame classifier.
func New(opts Options, classifier vad.FrameClassifier, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Chunker{opts: opts, classifier: classifier, logger: logger}
}

// Chunk converts the source to mono 16 kHz PCM, splits it, and writes the
// chunk files into dir. The normalized intermediate is removed afterwards.
func (c *Chunker) Chunk(ctx context.Context, source, dir string) ([]Chunk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chunk directory: %w", err)
	}

	normalized := filepath.Join(dir, fmt.Sprintf("normalised-%s.wav", uuid.NewString()))
	defer os.Remove(normalized)

	if err := media.Normalize(ctx, source, normalized); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", source, err)
	}
	waveform, err := media.ReadWaveform(normalized)
	if err != nil {
		return nil, fmt.Errorf("read normalized audio: %w", err)
	}

	chunks, err := c.Split(waveform, dir)
	if err != nil {
		return nil, err
	}
	c.logger.Info("audio chunked",
		logging.String("source", source),
		logging.Int("chunks", len(chunks)),
		logging.Float64("duration_seconds", waveform.Duration()))
	return chunks, nil
}

// Split slices an already normalized waveform into chunk files under dir.
func (c *Chunker) Split(waveform *media.Waveform, dir string) ([]Chunk, error) {
	frameSize := waveform.SampleRate * vad.FrameDurationMs / 1000
	if frameSize <= 0 || len(waveform.Samples)/frameSize == 0 {
		return nil, nil
	}
	duration := waveform.Duration()

	if !c.opts.EnableVAD {
		path := filepath.Join(dir, chunkFileName(0))
		if err := media.WriteChunk(path, waveform.Samples, waveform.SampleRate); err != nil {
			return nil, fmt.Errorf("write chunk: %w", err)
		}
		return []Chunk{{
			Path:        path,
			Index:       0,
			Start:       0,
			End:         duration,
			SpeechStart: 0,
			SpeechEnd:   duration,
		}}, nil
	}

	intervals := vad.NewDetector(c.classifier).Detect(waveform)
	spans := buildSpans(intervals, duration)

	var chunks []Chunk
	for _, s := range spans {
		for _, win := range walkWindows(s, c.opts.MaxChunkSeconds, c.opts.OverlapSeconds) {
			chunk, ok, err := c.materialize(waveform, win, dir, len(chunks))
			if err != nil {
				return nil, err
			}
			if ok {
				chunks = append(chunks, chunk)
			}
		}
	}
	return chunks, nil
}

// materialize quantizes a window to sample bounds and writes the WAV.
// Windows that collapse to zero samples are skipped.
func (c *Chunker) materialize(waveform *media.Waveform, win window, dir string, index int) (Chunk, bool, error) {
	rate := float64(waveform.SampleRate)
	startSample := int(math.Floor(win.start * rate))
	if startSample < 0 {
		startSample = 0
	}
	endSample := int(math.Ceil(win.end * rate))
	if endSample > len(waveform.Samples) {
		endSample = len(waveform.Samples)
	}
	if endSample <= startSample {
		return Chunk{}, false, nil
	}

	realStart := float64(startSample) / rate
	realEnd := float64(endSample) / rate

	path := filepath.Join(dir, chunkFileName(index))
	if err := media.WriteChunk(path, waveform.Samples[startSample:endSample], waveform.SampleRate); err != nil {
		return Chunk{}, false, fmt.Errorf("write chunk %d: %w", index, err)
	}

	speechStart := math.Max(realStart, win.speechStart)
	speechEnd := math.Min(realEnd, win.speechEnd)
	if speechEnd <= speechStart {
		speechStart = realStart
		speechEnd = realEnd
	}

	return Chunk{
		Path:        path,
		Index:       index,
		Start:       realStart,
		End:         realEnd,
		SpeechStart: speechStart,
		SpeechEnd:   speechEnd,
	}, true, nil
}

func chunkFileName(index int) string {
	return fmt.Sprintf("chunk-%04d.wav", index)
}
