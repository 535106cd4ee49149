package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lingoview/internal/chunker"
	"lingoview/internal/config"
	"lingoview/internal/consolidate"
	"lingoview/internal/exports"
	"lingoview/internal/language"
	"lingoview/internal/logging"
	"lingoview/internal/segment"
	"lingoview/internal/store"
	"lingoview/internal/tokenize"
	"lingoview/internal/transcribe"
	"lingoview/internal/translate"
	"lingoview/internal/vad"
	"lingoview/internal/vocals"
)

// Chunker splits a media file into transcription-ready chunks.
type Chunker interface {
	Chunk(ctx context.Context, source, dir string) ([]chunker.Chunk, error)
}

// Transcriber turns a chunk batch into ordered fragments.
type Transcriber interface {
	Transcribe(ctx context.Context, chunks []chunker.Chunk) ([]transcribe.Fragment, error)
}

// Separator isolates vocals from a media file, or returns the input
// unchanged when separation is unavailable.
type Separator interface {
	Separate(ctx context.Context, mediaPath string) string
}

// Components are the collaborators a Pipeline orchestrates. Zero-value
// optional fields (Translator, Separator, Store) disable the feature.
type Components struct {
	Chunker     Chunker
	Transcriber Transcriber
	Tokenizer   tokenize.Tokenizer
	Translator  *translate.Client
	Separator   Separator
	Store       *store.Store
}

// Pipeline generates subtitle results from media files.
type Pipeline struct {
	cfg    *config.Config
	comps  Components
	logger *slog.Logger
}

// Request describes one generation run.
type Request struct {
	MediaPath      string
	TargetLanguage string
	Title          string
}

// Outcome is a finished run plus its persisted export metadata.
type Outcome struct {
	Result    segment.Result
	Metadata  *exports.Metadata
	FromCache bool
}

// New assembles a Pipeline with the default collaborators built from
// configuration. The VAD classifier and transcription client come up
// here so failures surface before any work starts.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	classifier, err := vad.NewClassifier()
	if err != nil {
		return nil, fmt.Errorf("initialize vad: %w", err)
	}
	backend, err := transcribe.NewOpenAIClient(cfg.Whisper)
	if err != nil {
		return nil, fmt.Errorf("initialize transcriber: %w", err)
	}

	comps := Components{
		Chunker: chunker.New(chunkerOptions(cfg), classifier,
			logging.NewComponentLogger(logger, "chunker")),
		Transcriber: transcribe.NewDispatcher(backend, dispatcherOptions(cfg),
			logging.NewComponentLogger(logger, "transcribe")),
		Tokenizer:  newTokenizer(cfg.Tokenizer),
		Translator: translate.NewClient(cfg.Translate, logging.NewComponentLogger(logger, "translate")),
		Store:      st,
	}
	if cfg.Vocals.Enabled {
		comps.Separator = vocals.New(cfg.Vocals.Executable, cfg.Vocals.Model,
			cfg.VocalsCacheDir(), logging.NewComponentLogger(logger, "vocals"))
	}

	return NewWithComponents(cfg, comps, logger), nil
}

// NewWithComponents wires a Pipeline around explicit collaborators.
func NewWithComponents(cfg *config.Config, comps Components, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, comps: comps, logger: logger}
}

func chunkerOptions(cfg *config.Config) chunker.Options {
	return chunker.Options{
		EnableVAD:       cfg.Chunking.EnableVAD,
		MaxChunkSeconds: float64(cfg.Chunking.MaxChunkSeconds),
		OverlapSeconds:  cfg.Chunking.OverlapSeconds,
	}
}

func dispatcherOptions(cfg *config.Config) transcribe.DispatcherOptions {
	return transcribe.DispatcherOptions{
		MaxParallel:     cfg.Whisper.MaxParallel,
		MaxRetries:      cfg.Whisper.MaxRetries,
		RateLimitPerMin: cfg.Whisper.RateLimitPerMin,
	}
}

func newTokenizer(cfg config.Tokenizer) tokenize.Tokenizer {
	if cfg.Backend == "mecab" {
		return tokenize.NewMeCab(cfg.MecabBinary)
	}
	return tokenize.Whitespace{}
}

// Generate runs the full pipeline for one media file.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Outcome, error) {
	target := ""
	if req.TargetLanguage != "" {
		target = language.NormalizeTarget(req.TargetLanguage)
	}

	sourceHash, err := exports.ComputeSourceHash(req.MediaPath)
	if err != nil {
		return nil, err
	}

	if p.cfg.Cache.Enabled {
		if meta := p.lookupCached(ctx, sourceHash, target); meta != nil {
			p.logger.Info("reusing cached result",
				logging.String("media", req.MediaPath),
				logging.String("metadata", meta.MetadataFile))
			return &Outcome{Result: resultFromMetadata(meta), Metadata: meta, FromCache: true}, nil
		}
	}

	processedPath := req.MediaPath
	if p.comps.Separator != nil {
		processedPath = p.comps.Separator.Separate(ctx, req.MediaPath)
	}

	chunks, err := p.comps.Chunker.Chunk(ctx, processedPath, p.cfg.ChunkDir())
	if err != nil {
		return nil, fmt.Errorf("chunk audio: %w", err)
	}

	fragments, err := p.comps.Transcriber.Transcribe(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	p.logger.Info("transcription complete",
		logging.Int("chunks", len(chunks)),
		logging.Int("fragments", len(fragments)))

	consolidated, dominant := consolidate.Consolidate(fragments)
	segments := p.buildSegments(consolidated, dominant)

	var translated []segment.Segment
	if target != "" && len(segments) > 0 && p.comps.Translator != nil {
		translated, err = p.translateSegments(ctx, segments, target, dominant, req.Title)
		if err != nil {
			return nil, err
		}
	}

	segments, translated = segment.Sort(segments, translated)
	segments, translated = segment.Deduplicate(segments, translated)

	result := segment.Result{Segments: segments, Language: dominant}
	if len(translated) > 0 {
		result.TranslatedSegments = translated
		result.TranslationLanguage = target
	}

	meta, err := exports.Save(p.cfg.ExportDir(), result, sourceHash, req.MediaPath)
	if err != nil {
		return nil, err
	}

	if p.comps.Store != nil {
		if _, err := p.comps.Store.RecordRun(ctx, store.Run{
			Media:               req.MediaPath,
			SourceHash:          sourceHash,
			Language:            result.Language,
			TranslationLanguage: result.TranslationLanguage,
			SegmentCount:        len(result.Segments),
			MetadataPath:        meta.MetadataFile,
		}); err != nil {
			p.logger.Warn("failed to record run", logging.Error(err))
		}
	}

	return &Outcome{Result: result, Metadata: meta}, nil
}

func (p *Pipeline) buildSegments(fragments []transcribe.Fragment, dominant string) []segment.Segment {
	var segments []segment.Segment
	for _, frag := range fragments {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}
		tokens, err := p.comps.Tokenizer.Tokenize(text, dominant)
		if err != nil {
			p.logger.Warn("tokenization failed", logging.Error(err))
			tokens = nil
		}
		segments = append(segments, segment.Segment{
			Start:  frag.Start,
			End:    frag.End,
			Text:   text,
			Tokens: tokens,
		})
	}
	return segments
}

// translateSegments renders every segment into the target language with
// neighbor context, keeping the output list index-aligned with the
// input. A failed or empty translation falls back to the source text.
func (p *Pipeline) translateSegments(ctx context.Context, segments []segment.Segment, target, source, title string) ([]segment.Segment, error) {
	p.comps.Translator.BeginUsageSession()
	defer func() {
		if usage := p.comps.Translator.EndUsageSession(); usage != nil {
			for provider, stats := range usage {
				p.logger.Info("translation token usage",
					logging.String("provider", provider),
					logging.Int("requests", stats.Requests),
					logging.Int("input_tokens", stats.InputTokens),
					logging.Int("output_tokens", stats.OutputTokens))
			}
		}
	}()

	translated := make([]segment.Segment, 0, len(segments))
	for i, seg := range segments {
		tc := translate.Context{
			Title:         title,
			SegmentIndex:  i,
			TotalSegments: len(segments),
		}
		if i > 0 {
			tc.PreviousText = segments[i-1].Text
		}
		if i+1 < len(segments) {
			tc.NextText = segments[i+1].Text
		}

		text, err := p.comps.Translator.TranslateText(ctx, seg.Text, target, source, tc)
		if err != nil {
			return nil, fmt.Errorf("translate segment %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			text = seg.Text
		}

		tokens, err := p.comps.Tokenizer.Tokenize(text, target)
		if err != nil {
			tokens = nil
		}
		translated = append(translated, segment.Segment{
			Start:  seg.Start,
			End:    seg.End,
			Text:   text,
			Tokens: tokens,
		})
	}
	return translated, nil
}

// lookupCached resolves a prior run with the same source hash and target
// language. The run store is consulted first; when it has no record (or no
// store is attached) the export directory's metadata sidecars are scanned.
func (p *Pipeline) lookupCached(ctx context.Context, sourceHash, target string) *exports.Metadata {
	if p.comps.Store != nil {
		run, err := p.comps.Store.FindRun(ctx, sourceHash, target)
		if err != nil {
			p.logger.Warn("run store lookup failed", logging.Error(err))
		} else if run != nil {
			if meta, err := exports.ReadMetadata(run.MetadataPath); err == nil {
				return meta
			}
		}
	}
	if meta, ok := exports.FindCached(p.cfg.ExportDir(), sourceHash, target); ok {
		return meta
	}
	return nil
}

func resultFromMetadata(meta *exports.Metadata) segment.Result {
	return segment.Result{
		Segments:            meta.Segments,
		Language:            meta.Language,
		TranslatedSegments:  meta.TranslatedSegments,
		TranslationLanguage: meta.TranslationLanguage,
	}
}
