package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_QueuedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` || resp1.Usage.InputTokens != 10 || resp1.StopReason != "end" {
		t.Fatalf("first response = %+v", resp1)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}

	if mock.CallCount() != 2 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls = %+v", mock.Calls)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
	if rl.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %s", rl.RetryAfter)
	}
}

func TestCannedProvider_NeverRunsDry(t *testing.T) {
	p := NewCannedProvider()
	for i := 0; i < 3; i++ {
		resp, err := p.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		var out struct {
			Explanation string `json:"explanation"`
		}
		if err := json.Unmarshal(resp.Content, &out); err != nil || out.Explanation == "" {
			t.Fatalf("call %d: content %s (%v)", i, resp.Content, err)
		}
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "explanation")
	if p := PurposeFrom(ctx); p != "explanation" {
		t.Fatalf("expected 'explanation', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "PROMPTLAB_ANTHROPIC_API_KEY is required for the anthropic provider"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "PROMPTLAB_OPENAI_API_KEY is required for the openai provider"},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, ""},
		{"openrouter without key", Config{Provider: "openrouter"}, "PROMPTLAB_OPENROUTER_API_KEY is required for the openrouter provider"},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "unknown"}, `unknown LLM provider: "unknown"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PROMPTLAB_LLM_PROVIDER", "openai")
	t.Setenv("PROMPTLAB_OPENAI_API_KEY", "sk-env")
	t.Setenv("PROMPTLAB_OPENAI_MODEL", "gpt-4o")
	t.Setenv("PROMPTLAB_LLM_TIMEOUT", "3s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	// Unset values keep defaults.
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("anthropic model = %q", cfg.Anthropic.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("cfg = %+v, ok = %v", cfg, ok)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != "gemini" {
		t.Fatalf("gemini should win, got %q", cfg.Provider)
	}
}
