package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported TTS providers.
const (
	ProviderOpenAI     = "openai"
	ProviderElevenLabs = "elevenlabs"
)

// Config holds all configuration for the readaloud tool
type Config struct {
	// Provider selection: openai or elevenlabs
	Provider string `envconfig:"TTS_PROVIDER" default:"openai"`

	// OpenAI TTS configuration
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:""`
	Model        string `envconfig:"TTS_MODEL" default:"tts-1"` // tts-1, tts-1-hd
	UseHD        bool   `envconfig:"TTS_HD" default:"false"`    // Switches model to tts-1-hd
	Voice        string `envconfig:"TTS_VOICE" default:"alloy"` // alloy, echo, fable, onyx, nova, shimmer

	// ElevenLabs TTS configuration
	ElevenLabsAPIKey  string `envconfig:"ELEVENLABS_API_KEY" default:""`
	ElevenLabsVoiceID string `envconfig:"ELEVENLABS_VOICE_ID" default:"21m00Tcm4TlvDq8ikWAM"`
	ElevenLabsModelID string `envconfig:"ELEVENLABS_MODEL_ID" default:"eleven_turbo_v2_5"`

	// Speech configuration
	Speed float64 `envconfig:"TTS_SPEED" default:"1.0"` // Playback speed multiplier, must be > 0

	// Hotkey configuration
	Hotkey string `envconfig:"HOTKEY" default:"f9"` // Toggle key in interactive mode

	// Clip cache configuration
	CacheSize int `envconfig:"CACHE_SIZE" default:"20"` // Cached clips per run, 0 disables

	// Text cleaning configuration
	ReplacementsFile string `envconfig:"REPLACEMENTS_FILE" default:""` // Optional JSON replacement rules

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`        // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`      // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"false"` // Enable Prometheus metrics listener
	MetricsAddr    string `envconfig:"METRICS_ADDR" default:":9090"`    // Metrics listener address
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for scripted invocations)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks provider selection, the matching credential and value ranges.
// A missing credential must fail here, before any client is constructed.
func (c *Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when TTS_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderElevenLabs:
		if c.ElevenLabsAPIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY is required when TTS_PROVIDER=%s", ProviderElevenLabs)
		}
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q (expected %s or %s)", c.Provider, ProviderOpenAI, ProviderElevenLabs)
	}

	if c.Speed <= 0 {
		return fmt.Errorf("TTS_SPEED must be > 0, got %v", c.Speed)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must be >= 0, got %d", c.CacheSize)
	}

	return nil
}

// SpeechModel returns the OpenAI model to use, honoring the HD switch.
func (c *Config) SpeechModel() string {
	if c.UseHD {
		return "tts-1-hd"
	}
	return c.Model
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
