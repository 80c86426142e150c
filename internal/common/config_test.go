package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "*", config.Chat.AllowedOrigins)
	assert.Equal(t, 3, config.Chat.SessionQuota)
	assert.Equal(t, "30s", config.Chat.StageTimeout)
	assert.Equal(t, "5m", config.Profile.CacheTTL)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.Equal(t, "gemini-3-flash-preview", config.Gemini.Model)
	assert.Equal(t, "claude-haiku-3-5-20241022", config.Claude.Model)

	require.NoError(t, config.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
environment = "production"

[server]
port = 9090
host = "0.0.0.0"

[profile]
url = "https://lebonkosi.dev/profile.json"
cache_ttl = "0"

[chat]
allowed_origins = "https://lebonkosi.dev"
owner_name = "Lebo"
session_quota = 5

[llm]
default_provider = "claude"
`
	path := filepath.Join(t.TempDir(), "foliochat.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "https://lebonkosi.dev/profile.json", config.Profile.URL)
	assert.Equal(t, "0", config.Profile.CacheTTL)
	assert.Equal(t, "https://lebonkosi.dev", config.Chat.AllowedOrigins)
	assert.Equal(t, "Lebo", config.Chat.OwnerName)
	assert.Equal(t, 5, config.Chat.SessionQuota)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)

	// untouched keys keep their defaults
	assert.Equal(t, "30s", config.Chat.StageTimeout)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_SERVER_PORT", "7070")
	t.Setenv("FOLIO_PROFILE_URL", "https://env.example/profile.json")
	t.Setenv("FOLIO_ALLOWED_ORIGINS", "https://env.example")
	t.Setenv("FOLIO_OWNER_NAME", "Env Owner")
	t.Setenv("FOLIO_LLM_PROVIDER", "claude")
	t.Setenv("FOLIO_CLAUDE_API_KEY", "folio-key")
	t.Setenv("ANTHROPIC_API_KEY", "vendor-key")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "https://env.example/profile.json", config.Profile.URL)
	assert.Equal(t, "https://env.example", config.Chat.AllowedOrigins)
	assert.Equal(t, "Env Owner", config.Chat.OwnerName)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
	assert.Equal(t, "folio-key", config.Claude.APIKey, "FOLIO_ prefixed key wins over the vendor name")
}

func TestEnvOverrides_VendorKeyFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "vendor-key")
	t.Setenv("GEMINI_API_KEY", "gemini-vendor-key")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "vendor-key", config.Claude.APIKey)
	assert.Equal(t, "gemini-vendor-key", config.Gemini.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 3000, "127.0.0.1")
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 3000, config.Server.Port, "zero values must not clobber")
	assert.Equal(t, "127.0.0.1", config.Server.Host)
}

func TestValidate_BadDuration(t *testing.T) {
	config := NewDefaultConfig()
	config.Chat.StageTimeout = "thirty seconds"

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.stage_timeout")
}

func TestValidate_BadPort(t *testing.T) {
	config := NewDefaultConfig()
	config.Server.Port = 70000

	require.Error(t, config.Validate())
}

func TestValidate_BadProvider(t *testing.T) {
	config := NewDefaultConfig()
	config.LLM.DefaultProvider = "openai"

	require.Error(t, config.Validate())
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOr("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("garbage", time.Minute))
	assert.Equal(t, time.Duration(0), ParseDurationOr("0", time.Minute))
}
