package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StorageDir string `toml:"storage_dir"`
	LogDir     string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Chunking contains configuration for VAD-driven audio chunking.
type Chunking struct {
	// EnableVAD toggles voice-activity chunking. When false the whole
	// recording is dispatched as a single chunk.
	EnableVAD bool `toml:"enable_vad"`
	// MaxChunkSeconds bounds the duration of one transcription chunk.
	// Values below 30 are raised to 30.
	MaxChunkSeconds int `toml:"max_chunk_seconds"`
	// OverlapSeconds extends each sub-chunk on both sides so the
	// transcriber sees continuity across cuts. Effective floor is 0.75.
	OverlapSeconds float64 `toml:"overlap_seconds"`
}

// Whisper contains configuration for the transcription backend.
type Whisper struct {
	APIKey          string  `toml:"api_key"`
	APIBase         string  `toml:"api_base"`
	Model           string  `toml:"model"`
	Language        string  `toml:"language"`
	Temperature     float64 `toml:"temperature"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	MaxParallel     int     `toml:"max_parallel"`
	MaxRetries      int     `toml:"max_retries"`
	RateLimitPerMin int     `toml:"rate_limit_per_min"`
}

// Provider contains connection settings for one translation provider.
type Provider struct {
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// Translate contains configuration for subtitle translation.
type Translate struct {
	// Preferred selects the first provider tried: "openai", "grok",
	// "deepseek", or "auto".
	Preferred      string   `toml:"preferred"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	OpenAI         Provider `toml:"openai"`
	Grok           Provider `toml:"grok"`
	DeepSeek       Provider `toml:"deepseek"`
}

// Tokenizer contains configuration for lexical tokenization of segments.
type Tokenizer struct {
	// Backend selects the tokenizer: "mecab" or "whitespace".
	Backend     string `toml:"backend"`
	MecabBinary string `toml:"mecab_binary"`
}

// Vocals contains configuration for Demucs vocal isolation.
type Vocals struct {
	Enabled    bool   `toml:"enabled"`
	Model      string `toml:"model"`
	Executable string `toml:"executable"`
}

// Cache contains configuration for the run-metadata store.
type Cache struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for lingoview.
//
// Configuration sections by subsystem:
//   - Paths: storage and log directories
//   - Chunking: VAD toggle and chunk duration/overlap bounds
//   - Whisper: transcription API connection and dispatch limits
//   - Translate: ordered translation providers
//   - Tokenizer: lexical tokenization backend
//   - Vocals: Demucs vocal isolation
//   - Cache: run-metadata reuse
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Chunking  Chunking  `toml:"chunking"`
	Whisper   Whisper   `toml:"whisper"`
	Translate Translate `toml:"translate"`
	Tokenizer Tokenizer `toml:"tokenizer"`
	Vocals    Vocals    `toml:"vocals"`
	Cache     Cache     `toml:"cache"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lingoview/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was found at the resolved location.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		candidate = defaultPath
	}
	expanded, err := expandPath(candidate)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the storage and log directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StorageDir, c.Paths.LogDir, c.ChunkDir(), c.ExportDir()} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ChunkDir returns the directory chunk WAV files are materialized into.
func (c *Config) ChunkDir() string {
	return filepath.Join(c.Paths.StorageDir, "chunks")
}

// ExportDir returns the directory finished subtitle exports are written to.
func (c *Config) ExportDir() string {
	return filepath.Join(c.Paths.StorageDir, "exports")
}

// VocalsCacheDir returns the directory separated vocal tracks are cached in.
func (c *Config) VocalsCacheDir() string {
	return filepath.Join(c.Paths.StorageDir, "demucs")
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	abs, err := filepath.Abs(os.ExpandEnv(trimmed))
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
