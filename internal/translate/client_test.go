package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lingoview/internal/config"
)

type stubProvider struct {
	name   string
	result string
	usage  Usage
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Translate(ctx context.Context, text, target, source string, tc Context) (string, Usage, error) {
	s.calls++
	if s.err != nil {
		return "", s.usage, s.err
	}
	return s.result, s.usage, nil
}

func TestTranslateTextUsesFirstWorkingProvider(t *testing.T) {
	first := &stubProvider{name: "openai", result: "bonjour", usage: Usage{Requests: 1}}
	second := &stubProvider{name: "grok", result: "salut"}
	c := NewClientWithProviders([]Provider{first, second}, nil)

	got, err := c.TranslateText(context.Background(), "hello", "fr", "en", Context{})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "bonjour" {
		t.Fatalf("expected first provider result, got %q", got)
	}
	if second.calls != 0 {
		t.Fatalf("second provider should not have been called")
	}
}

func TestTranslateTextFallsThroughChain(t *testing.T) {
	first := &stubProvider{name: "openai", err: &ProviderError{Provider: "openai", Err: errors.New("down")}, usage: Usage{Requests: 1}}
	second := &stubProvider{name: "deepseek", result: "你好", usage: Usage{Requests: 1}}
	c := NewClientWithProviders([]Provider{first, second}, nil)

	got, err := c.TranslateText(context.Background(), "hello", "zh", "en", Context{})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "你好" {
		t.Fatalf("expected fallback result, got %q", got)
	}
}

func TestTranslateTextReturnsSourceWhenAllFail(t *testing.T) {
	failing := &stubProvider{name: "grok", err: errors.New("no quota")}
	c := NewClientWithProviders([]Provider{failing}, nil)

	got, err := c.TranslateText(context.Background(), "unchanged", "fr", "en", Context{})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "unchanged" {
		t.Fatalf("expected source passthrough, got %q", got)
	}
}

func TestTranslateTextEmptyChainPassesThrough(t *testing.T) {
	c := NewClientWithProviders(nil, nil)
	if c.Enabled() {
		t.Fatal("expected empty chain to report disabled")
	}
	got, err := c.TranslateText(context.Background(), "text", "fr", "en", Context{})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "text" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestTranslateTextBlankInput(t *testing.T) {
	c := NewClientWithProviders([]Provider{&stubProvider{name: "openai", result: "x"}}, nil)
	got, err := c.TranslateText(context.Background(), "   ", "fr", "en", Context{})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty result for blank input, got %q", got)
	}
}

func TestUsageSessions(t *testing.T) {
	provider := &stubProvider{name: "openai", result: "ok", usage: Usage{Requests: 1, InputTokens: 10, OutputTokens: 5}}
	c := NewClientWithProviders([]Provider{provider}, nil)

	c.BeginUsageSession()
	if _, err := c.TranslateText(context.Background(), "a", "fr", "en", Context{}); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if _, err := c.TranslateText(context.Background(), "b", "fr", "en", Context{}); err != nil {
		t.Fatalf("translate: %v", err)
	}

	session := c.EndUsageSession()
	if session["openai"].Requests != 2 || session["openai"].InputTokens != 20 {
		t.Fatalf("unexpected session usage %+v", session)
	}
	if c.EndUsageSession() != nil {
		t.Fatal("expected closed session to return nil")
	}

	totals := c.UsageTotals()
	if totals["openai"].OutputTokens != 10 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestNewClientOrdersPreferredFirst(t *testing.T) {
	cfg := config.Translate{
		Preferred:      "deepseek",
		TimeoutSeconds: 5,
		OpenAI:         config.Provider{APIKey: "k1", Model: "gpt"},
		DeepSeek:       config.Provider{APIKey: "k2", Endpoint: "https://example.com", Model: "ds"},
	}
	c := NewClient(cfg, nil)
	if len(c.providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(c.providers))
	}
	if c.providers[0].Name() != "deepseek" {
		t.Fatalf("expected deepseek first, got %s", c.providers[0].Name())
	}
}

func TestNewClientSkipsUnconfiguredProviders(t *testing.T) {
	c := NewClient(config.Translate{Preferred: "auto", TimeoutSeconds: 5}, nil)
	if c.Enabled() {
		t.Fatal("expected no providers without api keys")
	}
}

func TestChatProviderParsesCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": " こんにちは "}}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 7}
		}`))
	}))
	defer server.Close()

	p := newChatProvider("openai", server.URL, "key", "gpt", 5*time.Second)
	got, usage, err := p.Translate(context.Background(), "hello", "ja", "en", Context{Title: "Demo"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "こんにちは" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
	if usage.InputTokens != 42 || usage.OutputTokens != 7 {
		t.Fatalf("unexpected usage %+v", usage)
	}
}

func TestChatProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer server.Close()

	p := newChatProvider("grok", server.URL, "key", "grok-4-latest", 5*time.Second)
	_, _, err := p.Translate(context.Background(), "hello", "ja", "en", Context{})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Provider != "grok" {
		t.Fatalf("expected grok provider in error, got %q", perr.Provider)
	}
}

func TestComposePromptsIncludesContext(t *testing.T) {
	system, user := composePrompts("current line", "fr", "en", Context{
		Title:         "Some Show",
		PreviousText:  "before",
		NextText:      "after",
		SegmentIndex:  4,
		TotalSegments: 10,
	})
	if !strings.Contains(system, "Some Show") {
		t.Fatalf("system prompt missing title: %q", system)
	}
	for _, want := range []string{"Target language: fr", "5 of 10", "before", "current line", "after"} {
		if !strings.Contains(user, want) {
			t.Fatalf("user prompt missing %q: %q", want, user)
		}
	}
}
