package translate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"lingoview/internal/config"
	"lingoview/internal/logging"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

// Client runs an ordered provider chain with per-provider usage tracking.
type Client struct {
	providers []Provider
	logger    *slog.Logger

	mu      sync.Mutex
	totals  map[string]*Usage
	session map[string]*Usage
}

// NewClient assembles the provider chain from configuration. The
// preferred provider moves to the front; providers without an API key are
// left out entirely.
func NewClient(cfg config.Translate, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	available := map[string]Provider{}
	if cfg.OpenAI.APIKey != "" {
		endpoint := cfg.OpenAI.Endpoint
		if endpoint == "" {
			endpoint = defaultOpenAIEndpoint
		}
		available["openai"] = newChatProvider("openai", endpoint, cfg.OpenAI.APIKey, cfg.OpenAI.Model, timeout)
	}
	if cfg.Grok.APIKey != "" {
		available["grok"] = newChatProvider("grok", cfg.Grok.Endpoint, cfg.Grok.APIKey, cfg.Grok.Model, timeout)
	}
	if cfg.DeepSeek.APIKey != "" {
		available["deepseek"] = newChatProvider("deepseek", cfg.DeepSeek.Endpoint, cfg.DeepSeek.APIKey, cfg.DeepSeek.Model, timeout)
	}

	order := []string{"openai", "grok", "deepseek"}
	if cfg.Preferred != "" && cfg.Preferred != "auto" {
		reordered := []string{cfg.Preferred}
		for _, name := range order {
			if name != cfg.Preferred {
				reordered = append(reordered, name)
			}
		}
		order = reordered
	}

	var chain []Provider
	for _, name := range order {
		if provider, ok := available[name]; ok {
			chain = append(chain, provider)
		}
	}

	return &Client{
		providers: chain,
		logger:    logger,
		totals:    make(map[string]*Usage),
	}
}

// NewClientWithProviders builds a client around an explicit chain.
func NewClientWithProviders(providers []Provider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{providers: providers, logger: logger, totals: make(map[string]*Usage)}
}

// Enabled reports whether any provider is configured.
func (c *Client) Enabled() bool {
	return len(c.providers) > 0
}

// TranslateText walks the provider chain until one succeeds. Every
// provider failing, or none being configured, returns the source text
// unchanged rather than an error.
func (c *Client) TranslateText(ctx context.Context, text, targetLanguage, sourceLanguage string, tc Context) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	for _, provider := range c.providers {
		translated, usage, err := provider.Translate(ctx, text, targetLanguage, sourceLanguage, tc)
		c.recordUsage(provider.Name(), usage)
		if err == nil {
			return translated, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("translation provider failed, trying next",
			logging.String("provider", provider.Name()),
			logging.Error(err))
	}

	return text, nil
}

// BeginUsageSession starts a fresh per-session usage window.
func (c *Client) BeginUsageSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = make(map[string]*Usage)
}

// EndUsageSession returns the session's usage snapshot and closes the
// window. Without an open session it returns nil.
func (c *Client) EndUsageSession() map[string]Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	snapshot := make(map[string]Usage, len(c.session))
	for name, usage := range c.session {
		snapshot[name] = *usage
	}
	c.session = nil
	if len(snapshot) == 0 {
		return nil
	}
	return snapshot
}

// UsageTotals returns the process-lifetime usage per provider.
func (c *Client) UsageTotals() map[string]Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	totals := make(map[string]Usage, len(c.totals))
	for name, usage := range c.totals {
		totals[name] = *usage
	}
	return totals
}

func (c *Client) recordUsage(provider string, usage Usage) {
	if usage.Requests == 0 && usage.InputTokens == 0 && usage.OutputTokens == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	appendUsage(c.totals, provider, usage)
	if c.session != nil {
		appendUsage(c.session, provider, usage)
	}
}

func appendUsage(container map[string]*Usage, provider string, usage Usage) {
	bucket, ok := container[provider]
	if !ok {
		bucket = &Usage{}
		container[provider] = bucket
	}
	bucket.Requests += usage.Requests
	bucket.InputTokens += max(0, usage.InputTokens)
	bucket.OutputTokens += max(0, usage.OutputTokens)
}
