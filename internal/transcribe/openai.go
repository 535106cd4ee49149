package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lingoview/internal/config"
)

// OpenAIClient sends chunk audio to the OpenAI transcription endpoint and
// parses the verbose_json response into fragments.
type OpenAIClient struct {
	apiKey      string
	apiBase     string
	model       string
	language    string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient builds a client from the whisper configuration.
func NewOpenAIClient(cfg config.Whisper) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("whisper api key is required: set OPENAI_API_KEY or whisper.api_key in the config file")
	}
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		apiBase:     strings.TrimRight(cfg.APIBase, "/"),
		model:       cfg.Model,
		language:    cfg.Language,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

type verboseSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type verboseResponse struct {
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Text     string           `json:"text"`
	Segments []verboseSegment `json:"segments"`
}

// TranscribeChunk uploads one chunk file and returns its fragments in
// chunk-relative time. A response without segments degrades to a single
// fragment spanning the reported duration.
func (c *OpenAIClient) TranscribeChunk(ctx context.Context, path string) ([]Fragment, error) {
	body, contentType, err := c.buildRequestBody(path)
	if err != nil {
		return nil, err
	}

	url := c.apiBase + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call transcription api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("transcription api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}
	return payload.fragments(), nil
}

func (c *OpenAIClient) buildRequestBody(path string) (io.Reader, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open chunk: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":           c.model,
		"response_format": "verbose_json",
		"temperature":     strconv.FormatFloat(c.temperature, 'f', -1, 64),
	}
	if c.language != "" {
		fields["language"] = c.language
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy chunk into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func (p verboseResponse) fragments() []Fragment {
	language := p.Language
	if language == "" {
		language = LanguageUnknown
	}

	if len(p.Segments) == 0 {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			return nil
		}
		return []Fragment{{Start: 0, End: p.Duration, Text: text, Language: language}}
	}

	var fragments []Fragment
	for _, seg := range p.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		end := seg.End
		if end < seg.Start {
			end = seg.Start
		}
		fragments = append(fragments, Fragment{Start: seg.Start, End: end, Text: text, Language: language})
	}
	return fragments
}
