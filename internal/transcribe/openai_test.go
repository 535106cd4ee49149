package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"lingoview/internal/config"
)

func writeTempChunk(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk-0000.wav")
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatalf("write temp chunk: %v", err)
	}
	return path
}

func newTestClient(t *testing.T, baseURL string) *OpenAIClient {
	t.Helper()
	client, err := NewOpenAIClient(config.Whisper{
		APIKey:         "test-key",
		APIBase:        baseURL,
		Model:          "whisper-1",
		Language:       "ja",
		Temperature:    0.2,
		TimeoutSeconds: 10,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestOpenAIClientParsesSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("unexpected model %q", got)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("unexpected response_format %q", got)
		}
		if got := r.FormValue("language"); got != "ja" {
			t.Errorf("unexpected language %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file field: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"language": "japanese",
			"duration": 4.5,
			"text": "こんにちは 世界",
			"segments": [
				{"start": 0.0, "end": 2.0, "text": " こんにちは "},
				{"start": 2.0, "end": 4.5, "text": "世界"},
				{"start": 4.5, "end": 4.5, "text": "  "}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	fragments, err := client.TranscribeChunk(context.Background(), writeTempChunk(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %v", len(fragments), fragments)
	}
	if fragments[0].Text != "こんにちは" || fragments[0].Start != 0 || fragments[0].End != 2 {
		t.Fatalf("unexpected first fragment %+v", fragments[0])
	}
	if fragments[1].Language != "japanese" {
		t.Fatalf("expected response language on fragments, got %q", fragments[1].Language)
	}
}

func TestOpenAIClientFallsBackToWholeText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"language": "english", "duration": 3.2, "text": " hello world "}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	fragments, err := client.TranscribeChunk(context.Background(), writeTempChunk(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	got := fragments[0]
	if got.Text != "hello world" || got.Start != 0 || got.End != 3.2 {
		t.Fatalf("unexpected fallback fragment %+v", got)
	}
}

func TestOpenAIClientEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"language": "english", "text": "   "}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	fragments, err := client.TranscribeChunk(context.Background(), writeTempChunk(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(fragments) != 0 {
		t.Fatalf("expected no fragments, got %v", fragments)
	}
}

func TestOpenAIClientReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.TranscribeChunk(context.Background(), writeTempChunk(t)); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	if _, err := NewOpenAIClient(config.Whisper{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
