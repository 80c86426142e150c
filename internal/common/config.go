package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Profile     ProfileConfig `toml:"profile"`
	Chat        ChatConfig    `toml:"chat"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
	LLM         LLMConfig     `toml:"llm"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// ProfileConfig describes the upstream knowledge document.
type ProfileConfig struct {
	URL             string `toml:"url" validate:"omitempty,url"` // Profile JSON endpoint
	RequestTimeout  string `toml:"request_timeout"`              // Fetch timeout as duration string (default: "10s")
	CacheTTL        string `toml:"cache_ttl"`                    // Freshness window; "0" re-fetches every request
	RefreshSchedule string `toml:"refresh_schedule"`             // Optional cron expression for background refresh
	UserAgent       string `toml:"user_agent"`                   // User-Agent sent on profile fetches
}

// ChatConfig controls the question pipeline and its HTTP surface.
type ChatConfig struct {
	AllowedOrigins string `toml:"allowed_origins"`                    // Comma-separated origin allow-list; "*" allows any
	OwnerName      string `toml:"owner_name" validate:"required"`     // Person the knowledge base describes
	SessionQuota   int    `toml:"session_quota" validate:"gte=1"`     // Questions per caller session (enforced caller-side)
	StageTimeout   string `toml:"stage_timeout" validate:"required"`  // Per-upstream-call deadline as duration string
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for pipeline calls (default: "gemini-3-flash-preview")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.2)
	RateLimit   string  `toml:"rate_limit"`  // Minimum spacing between calls (default: "4s" for 15 RPM)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for pipeline calls (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in a generated answer (default: 1024)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.2)
	RateLimit   string  `toml:"rate_limit"`  // Minimum spacing between calls (default: "1s")
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the default provider when a model string carries no
// provider prefix.
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Profile: ProfileConfig{
			RequestTimeout: "10s",
			CacheTTL:       "5m", // Staleness bound: answers may lag the document by up to this window. "0" restores fetch-per-request.
			UserAgent:      "foliochat/" + GetVersion(),
		},
		Chat: ChatConfig{
			AllowedOrigins: "*",
			OwnerName:      "the owner",
			SessionQuota:   3,
			StageTimeout:   "30s",
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-3-flash-preview",
			Temperature: 0.2,
			RateLimit:   "4s",
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   1024,
			Temperature: 0.2,
			RateLimit:   "1s",
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env.
// An empty path loads defaults plus environment overrides only.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies FOLIO_* environment variables on top of file
// values. Provider API keys also honor the vendors' conventional names.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("FOLIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FOLIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if url := os.Getenv("FOLIO_PROFILE_URL"); url != "" {
		config.Profile.URL = url
	}
	if ttl := os.Getenv("FOLIO_PROFILE_CACHE_TTL"); ttl != "" {
		config.Profile.CacheTTL = ttl
	}
	if origins := os.Getenv("FOLIO_ALLOWED_ORIGINS"); origins != "" {
		config.Chat.AllowedOrigins = origins
	}
	if owner := os.Getenv("FOLIO_OWNER_NAME"); owner != "" {
		config.Chat.OwnerName = owner
	}
	if provider := os.Getenv("FOLIO_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if key := os.Getenv("FOLIO_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("FOLIO_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("FOLIO_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if model := os.Getenv("FOLIO_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks structural constraints and duration strings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	durations := map[string]string{
		"profile.request_timeout": c.Profile.RequestTimeout,
		"profile.cache_ttl":       c.Profile.CacheTTL,
		"chat.stage_timeout":      c.Chat.StageTimeout,
		"gemini.rate_limit":       c.Gemini.RateLimit,
		"claude.rate_limit":       c.Claude.RateLimit,
	}
	for name, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid configuration: %s %q is not a duration: %w", name, value, err)
		}
	}

	return nil
}

// ParseDurationOr parses a duration string, falling back to def when the
// value is empty or malformed.
func ParseDurationOr(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
