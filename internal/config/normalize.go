package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeChunking()
	c.normalizeWhisper()
	c.normalizeTranslate()
	c.normalizeTokenizer()
	c.normalizeVocals()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StorageDir) == "" {
		c.Paths.StorageDir = defaultStorageDir
	}
	if c.Paths.StorageDir, err = expandPath(c.Paths.StorageDir); err != nil {
		return fmt.Errorf("paths.storage_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeChunking() {
	if c.Chunking.MaxChunkSeconds < 30 {
		c.Chunking.MaxChunkSeconds = 30
	}
	if c.Chunking.OverlapSeconds < 0 {
		c.Chunking.OverlapSeconds = 0
	}
	if c.Chunking.OverlapSeconds > 30 {
		c.Chunking.OverlapSeconds = 30
	}
}

func (c *Config) normalizeWhisper() {
	if c.Whisper.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Whisper.APIKey = value
		}
	}
	c.Whisper.APIBase = strings.TrimRight(strings.TrimSpace(c.Whisper.APIBase), "/")
	if c.Whisper.APIBase == "" {
		c.Whisper.APIBase = defaultWhisperAPIBase
	}
	if strings.TrimSpace(c.Whisper.Model) == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	c.Whisper.Language = strings.TrimSpace(c.Whisper.Language)
	if c.Whisper.Temperature < 0 {
		c.Whisper.Temperature = 0
	}
	if c.Whisper.Temperature > 1 {
		c.Whisper.Temperature = 1
	}
	if c.Whisper.TimeoutSeconds <= 0 {
		c.Whisper.TimeoutSeconds = defaultWhisperTimeout
	}
	if c.Whisper.MaxParallel < 1 {
		c.Whisper.MaxParallel = 1
	}
	if c.Whisper.MaxParallel > 16 {
		c.Whisper.MaxParallel = 16
	}
	if c.Whisper.MaxRetries < 1 {
		c.Whisper.MaxRetries = 1
	}
	if c.Whisper.RateLimitPerMin <= 0 {
		c.Whisper.RateLimitPerMin = defaultWhisperRPM
	}
}

func (c *Config) normalizeTranslate() {
	preferred := strings.ToLower(strings.TrimSpace(c.Translate.Preferred))
	switch preferred {
	case "openai", "grok", "deepseek", "auto":
	case "gpt":
		preferred = "openai"
	default:
		preferred = "auto"
	}
	c.Translate.Preferred = preferred
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTranslateTimeout
	}
	if c.Translate.OpenAI.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Translate.OpenAI.APIKey = value
		}
	}
	if c.Translate.Grok.APIKey == "" {
		if value, ok := os.LookupEnv("GROK_API_KEY"); ok {
			c.Translate.Grok.APIKey = value
		}
	}
	if c.Translate.DeepSeek.APIKey == "" {
		if value, ok := os.LookupEnv("DEEPSEEK_API_KEY"); ok {
			c.Translate.DeepSeek.APIKey = value
		}
	}
	if strings.TrimSpace(c.Translate.Grok.Endpoint) == "" {
		c.Translate.Grok.Endpoint = defaultGrokEndpoint
	}
	if strings.TrimSpace(c.Translate.DeepSeek.Endpoint) == "" {
		c.Translate.DeepSeek.Endpoint = defaultDeepSeekEndpoint
	}
	if strings.TrimSpace(c.Translate.OpenAI.Model) == "" {
		c.Translate.OpenAI.Model = defaultOpenAIModel
	}
	if strings.TrimSpace(c.Translate.Grok.Model) == "" {
		c.Translate.Grok.Model = defaultGrokModel
	}
	if strings.TrimSpace(c.Translate.DeepSeek.Model) == "" {
		c.Translate.DeepSeek.Model = defaultDeepSeekModel
	}
}

func (c *Config) normalizeTokenizer() {
	backend := strings.ToLower(strings.TrimSpace(c.Tokenizer.Backend))
	if backend != "mecab" && backend != "whitespace" {
		backend = defaultTokenizerBackend
	}
	c.Tokenizer.Backend = backend
	if strings.TrimSpace(c.Tokenizer.MecabBinary) == "" {
		c.Tokenizer.MecabBinary = defaultMecabBinary
	}
}

func (c *Config) normalizeVocals() {
	if strings.TrimSpace(c.Vocals.Model) == "" {
		c.Vocals.Model = defaultDemucsModel
	}
	if strings.TrimSpace(c.Vocals.Executable) == "" {
		c.Vocals.Executable = defaultDemucsExecutable
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format != "json" && format != "console" {
		format = defaultLogFormat
	}
	c.Logging.Format = format
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
