package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"lingoview/internal/chunker"
	"lingoview/internal/logging"
)

// DispatcherOptions bounds the concurrent chunk uploads.
type DispatcherOptions struct {
	MaxParallel     int
	MaxRetries      int
	RateLimitPerMin int
}

// Dispatcher transcribes a batch of chunks concurrently and merges the
// fragments back into recording order.
type Dispatcher struct {
	backend ChunkTranscriber
	opts    DispatcherOptions
	logger  *slog.Logger
}

// NewDispatcher wraps a backend with concurrency, rate limiting, and retry
// handling.
func NewDispatcher(backend ChunkTranscriber, opts DispatcherOptions, logger *slog.Logger) *Dispatcher {
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.RateLimitPerMin < 1 {
		opts.RateLimitPerMin = 60
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{backend: backend, opts: opts, logger: logger}
}

// Transcribe runs every chunk through the backend and returns the merged
// fragments sorted by start time, with unknown language tags replaced by
// the batch's dominant language. Chunk files are removed as each chunk
// completes; removal failures are ignored.
func (d *Dispatcher) Transcribe(ctx context.Context, chunks []chunker.Chunk) ([]Fragment, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	limiter := rate.NewLimiter(rate.Limit(float64(d.opts.RateLimitPerMin)/60.0), 1)

	var (
		mu        sync.Mutex
		fragments []Fragment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.MaxParallel)

	for _, chunk := range chunks {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			raw, err := d.transcribeWithRetry(gctx, chunk)
			if err != nil {
				return err
			}

			rebased := rebase(chunk, raw)
			os.Remove(chunk.Path)

			mu.Lock()
			fragments = append(fragments, rebased...)
			mu.Unlock()

			d.logger.Debug("chunk transcribed",
				logging.Int(logging.FieldChunkIndex, chunk.Index),
				logging.Int("fragments", len(rebased)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortFragments(fragments)
	fillUnknownLanguages(fragments)
	return fragments, nil
}

func (d *Dispatcher) transcribeWithRetry(ctx context.Context, chunk chunker.Chunk) ([]Fragment, error) {
	var lastErr error
	for attempt := 0; attempt < d.opts.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fragments, err := d.backend.TranscribeChunk(ctx, chunk.Path)
		if err == nil {
			return fragments, nil
		}
		lastErr = err

		if attempt < d.opts.MaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			d.logger.Warn("chunk transcription failed, retrying",
				logging.Int(logging.FieldChunkIndex, chunk.Index),
				logging.Int("attempt", attempt+1),
				logging.Duration("backoff", backoff),
				logging.Error(err))

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil, fmt.Errorf("chunk %d failed after %d attempts: %w", chunk.Index, d.opts.MaxRetries, lastErr)
}
