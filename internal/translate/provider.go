package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Context carries surrounding-subtitle hints that keep LLM translations
// consistent across a run.
type Context struct {
	Title         string
	PreviousText  string
	NextText      string
	SegmentIndex  int
	TotalSegments int
}

// Usage accumulates request and token counts for one provider.
type Usage struct {
	Requests     int `json:"requests"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ProviderError wraps a failure from a specific provider so callers can
// tell which link of the chain broke.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translate provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider translates one subtitle line. Implementations report token
// usage alongside the result.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, targetLanguage, sourceLanguage string, tc Context) (string, Usage, error)
}

// chatProvider is an OpenAI-compatible chat completions endpoint. All
// three supported services (OpenAI, Grok, DeepSeek) speak this shape.
type chatProvider struct {
	name       string
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

func newChatProvider(name, endpoint, apiKey, model string, timeout time.Duration) *chatProvider {
	return &chatProvider{
		name:       name,
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *chatProvider) Name() string { return p.name }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		InputTokens      int `json:"input_tokens"`
		OutputTokens     int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *chatProvider) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string, tc Context) (string, Usage, error) {
	systemPrompt, userPrompt := composePrompts(text, targetLanguage, sourceLanguage, tc)
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", Usage{}, &ProviderError{Provider: p.name, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", Usage{}, &ProviderError{Provider: p.name, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", Usage{Requests: 1}, &ProviderError{Provider: p.name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", Usage{Requests: 1}, &ProviderError{
			Provider: p.name,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", Usage{Requests: 1}, &ProviderError{Provider: p.name, Err: fmt.Errorf("decode response: %w", err)}
	}

	usage := Usage{
		Requests:     1,
		InputTokens:  firstNonZero(decoded.Usage.InputTokens, decoded.Usage.PromptTokens),
		OutputTokens: firstNonZero(decoded.Usage.OutputTokens, decoded.Usage.CompletionTokens),
	}
	if len(decoded.Choices) == 0 {
		return "", usage, nil
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), usage, nil
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
