package llm

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/common"
)

func newTestFactory(geminiKey, claudeKey string, defaultProvider common.LLMProvider) *ProviderFactory {
	config := common.NewDefaultConfig()
	config.Gemini.APIKey = geminiKey
	config.Claude.APIKey = claudeKey
	config.LLM.DefaultProvider = defaultProvider
	return NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, arbor.NewLogger())
}

func TestDetectProvider(t *testing.T) {
	factory := newTestFactory("", "", common.LLMProviderGemini)

	tests := []struct {
		model string
		want  ProviderType
	}{
		{"claude-haiku-3-5-20241022", ProviderClaude},
		{"claude/claude-haiku-3-5-20241022", ProviderClaude},
		{"anthropic/claude-sonnet-4", ProviderClaude},
		{"gemini-3-flash-preview", ProviderGemini},
		{"gemini/gemini-3-flash-preview", ProviderGemini},
		{"google/gemini-2.0-flash", ProviderGemini},
		{"CLAUDE-haiku", ProviderClaude},
		{"", ProviderGemini},
		{"mystery-model", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, factory.DetectProvider(tt.model))
		})
	}
}

func TestDetectProvider_DefaultFromConfig(t *testing.T) {
	factory := newTestFactory("", "", common.LLMProviderClaude)

	assert.Equal(t, ProviderClaude, factory.DetectProvider(""))
	assert.Equal(t, ProviderClaude, factory.DetectProvider("mystery-model"))
}

func TestNormalizeModel(t *testing.T) {
	factory := newTestFactory("", "", common.LLMProviderGemini)

	assert.Equal(t, "claude-haiku-3-5-20241022", factory.NormalizeModel("claude/claude-haiku-3-5-20241022"))
	assert.Equal(t, "gemini-3-flash-preview", factory.NormalizeModel("gemini/gemini-3-flash-preview"))
	assert.Equal(t, "claude-haiku-3-5-20241022", factory.NormalizeModel("claude-haiku-3-5-20241022"))
	assert.Equal(t, "gemini-2.0-flash", factory.NormalizeModel("google/gemini-2.0-flash"))
}

func TestGetDefaultModel(t *testing.T) {
	factory := newTestFactory("", "", common.LLMProviderGemini)

	assert.Equal(t, "claude-haiku-3-5-20241022", factory.GetDefaultModel(ProviderClaude))
	assert.Equal(t, "gemini-3-flash-preview", factory.GetDefaultModel(ProviderGemini))
}

func TestHasCredentials(t *testing.T) {
	factory := newTestFactory("gemini-key", "", common.LLMProviderGemini)

	assert.True(t, factory.HasCredentials(ProviderGemini))
	assert.False(t, factory.HasCredentials(ProviderClaude))
}

func TestHealthCheck(t *testing.T) {
	healthy := newTestFactory("gemini-key", "", common.LLMProviderGemini)
	assert.NoError(t, healthy.HealthCheck(context.Background()))

	unhealthy := newTestFactory("", "claude-key", common.LLMProviderGemini)
	err := unhealthy.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key configured")
}

func TestClientInit_ConcurrentFirstUse(t *testing.T) {
	factory := newTestFactory("gemini-key", "claude-key", common.LLMProviderGemini)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := factory.getClaudeClient()
			assert.NoError(t, err)
			_, err = factory.getGeminiClient(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NoError(t, factory.Close())

	// clients rebuild after Close
	_, err := factory.getClaudeClient()
	assert.NoError(t, err)
}

func TestGenerateContent_MissingCredentials(t *testing.T) {
	factory := newTestFactory("", "", common.LLMProviderGemini)

	_, err := factory.GenerateContent(context.Background(), &ContentRequest{
		UserContent: "hello",
		Model:       "claude-haiku-3-5-20241022",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API key not configured")

	_, err = factory.GenerateContent(context.Background(), &ContentRequest{
		UserContent: "hello",
		Model:       "gemini-3-flash-preview",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API key not configured")
}
