package config

const (
	defaultStorageDir = "~/.local/share/lingoview"
	defaultLogDir     = "~/.local/share/lingoview/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	defaultMaxChunkSeconds = 120
	defaultOverlapSeconds  = 1.0

	defaultWhisperAPIBase  = "https://api.openai.com/v1"
	defaultWhisperModel    = "whisper-1"
	defaultWhisperTimeout  = 300
	defaultWhisperParallel = 4
	defaultWhisperRetries  = 3
	defaultWhisperRPM      = 60

	defaultTranslatePreferred = "auto"
	defaultTranslateTimeout   = 120
	defaultOpenAIModel        = "gpt-4.1-mini"
	defaultGrokEndpoint       = "https://api.x.ai/v1/chat/completions"
	defaultGrokModel          = "grok-4-latest"
	defaultDeepSeekEndpoint   = "https://api.deepseek.com/chat/completions"
	defaultDeepSeekModel      = "deepseek-chat"

	defaultTokenizerBackend = "whitespace"
	defaultMecabBinary      = "mecab"

	defaultDemucsModel      = "htdemucs"
	defaultDemucsExecutable = "demucs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StorageDir: defaultStorageDir,
			LogDir:     defaultLogDir,
		},
		Chunking: Chunking{
			EnableVAD:       true,
			MaxChunkSeconds: defaultMaxChunkSeconds,
			OverlapSeconds:  defaultOverlapSeconds,
		},
		Whisper: Whisper{
			APIBase:         defaultWhisperAPIBase,
			Model:           defaultWhisperModel,
			Temperature:     0.2,
			TimeoutSeconds:  defaultWhisperTimeout,
			MaxParallel:     defaultWhisperParallel,
			MaxRetries:      defaultWhisperRetries,
			RateLimitPerMin: defaultWhisperRPM,
		},
		Translate: Translate{
			Preferred:      defaultTranslatePreferred,
			TimeoutSeconds: defaultTranslateTimeout,
			OpenAI:         Provider{Model: defaultOpenAIModel},
			Grok:           Provider{Endpoint: defaultGrokEndpoint, Model: defaultGrokModel},
			DeepSeek:       Provider{Endpoint: defaultDeepSeekEndpoint, Model: defaultDeepSeekModel},
		},
		Tokenizer: Tokenizer{
			Backend:     defaultTokenizerBackend,
			MecabBinary: defaultMecabBinary,
		},
		Vocals: Vocals{
			Enabled:    false,
			Model:      defaultDemucsModel,
			Executable: defaultDemucsExecutable,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
