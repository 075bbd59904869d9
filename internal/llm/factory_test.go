package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("mock is canned and undecorated", func(t *testing.T) {
		p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil, nil)
		require.NoError(t, err)
		assert.IsType(t, &MockProvider{}, p)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil, nil)
		assert.ErrorContains(t, err, "PROMPTLAB_ANTHROPIC_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "llama"}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("real provider is wrapped", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Anthropic.APIKey = "sk-test"
		p, err := NewProvider(ctx, cfg, recorderFunc(nil), nil)
		require.NoError(t, err)
		assert.IsType(t, &BreakerProvider{}, p)
		assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
	})

	t.Run("breaker disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = "sk-or"
		cfg.Breaker.Enabled = false
		p, err := NewProvider(ctx, cfg, nil, nil)
		require.NoError(t, err)
		assert.IsType(t, &RetryProvider{}, p)
		assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())
	})
}

func TestNewProviderFromEnv(t *testing.T) {
	for _, k := range []string{"PROMPTLAB_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	t.Setenv("PROMPTLAB_LLM_PROVIDER", "mock")
	p, err = NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	t.Setenv("PROMPTLAB_LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPTLAB_OPENAI_MODEL", "gpt-4o")
	p, err = NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
