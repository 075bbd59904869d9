package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// NewProvider creates a Provider from configuration. Real providers are
// wrapped as caller → breaker → retry → logging → base, so every attempt is
// recorded and the breaker sees the outcome after retries. A nil recorder
// skips event logging.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewCannedProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if recorder != nil {
		p = WithLogging(p, cfg.Provider, recorder, logger)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Breaker.Enabled {
		p = WithBreaker(p, cfg.Breaker, logger)
	}
	return p, nil
}

// NewProviderFromEnv builds a provider from PROMPTLAB_* variables when
// PROMPTLAB_LLM_PROVIDER is set, and otherwise from whichever vendor API key
// is present. It returns a nil Provider and no error when nothing is
// configured.
func NewProviderFromEnv(ctx context.Context, recorder EventRecorder, logger *log.Logger) (Provider, error) {
	var cfg Config
	if os.Getenv(EnvPrefix+"LLM_PROVIDER") != "" {
		cfg = ConfigFromEnv()
	} else {
		var ok bool
		cfg, ok = DiscoverConfig()
		if !ok {
			return nil, nil
		}
		ApplyEnv(&cfg)
	}
	return NewProvider(ctx, cfg, recorder, logger)
}
