// Package config loads PromptLab settings from YAML and the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/llm"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// ModeAuto selects the explanation mode per level.
const ModeAuto = "auto"

// Config is the full application configuration.
type Config struct {
	DBPath      string            `yaml:"db_path"`
	LevelsFile  string            `yaml:"levels_file"`
	Explanation ExplanationConfig `yaml:"explanation"`
	Log         LogConfig         `yaml:"log"`
	MCP         MCPConfig         `yaml:"mcp"`
	LLM         llm.Config        `yaml:"llm"`
}

// ExplanationConfig controls the explanation engine.
type ExplanationConfig struct {
	Mode            string        `yaml:"mode"`
	OracleTimeout   time.Duration `yaml:"oracle_timeout"`
	OracleMaxTokens int           `yaml:"oracle_max_tokens"`
	Seed            uint64        `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type MCPConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// Default returns the embedded defaults.
func Default() Config {
	cfg := Config{LLM: llm.DefaultConfig()}
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return fallbackConfig()
	}
	return cfg
}

func fallbackConfig() Config {
	oc := explain.DefaultOracleConfig()
	return Config{
		Explanation: ExplanationConfig{
			Mode:            ModeAuto,
			OracleTimeout:   oc.Timeout,
			OracleMaxTokens: oc.MaxTokens,
		},
		Log: LogConfig{Level: "info"},
		MCP: MCPConfig{HTTPAddr: ":8765"},
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration. Search order: customPath, then
// $XDG_CONFIG_HOME/promptlab/config.yaml (or ~/.config/promptlab), then the
// embedded defaults. PROMPTLAB_* environment variables are applied last.
// A missing customPath is an error; a missing user file is not.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		if err := mergeFile(&cfg, customPath); err != nil {
			return cfg, err
		}
	} else if p := UserConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := mergeFile(&cfg, p); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the per-user config file location, or "" when no
// home directory is available.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "promptlab", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptlab", "config.yaml")
}

func applyEnv(cfg *Config) {
	strs := []struct {
		name string
		dst  *string
	}{
		{"DB", &cfg.DBPath},
		{"LEVELS", &cfg.LevelsFile},
		{"EXPLANATION_MODE", &cfg.Explanation.Mode},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FILE", &cfg.Log.File},
		{"MCP_ADDR", &cfg.MCP.HTTPAddr},
	}
	for _, b := range strs {
		if v := os.Getenv(llm.EnvPrefix + b.name); v != "" {
			*b.dst = v
		}
	}
	if v := os.Getenv(llm.EnvPrefix + "ORACLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Explanation.OracleTimeout = d
		}
	}
	if v := os.Getenv(llm.EnvPrefix + "SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Explanation.Seed = n
		}
	}
	llm.ApplyEnv(&cfg.LLM)
}

// Validate rejects settings the application cannot start with. LLM keys
// are not checked here; a missing key only disables oracle explanations.
func (c Config) Validate() error {
	var errs []string
	if m := strings.ToLower(c.Explanation.Mode); m != ModeAuto {
		if _, ok := explain.ParseMode(m); !ok {
			errs = append(errs, fmt.Sprintf("unknown explanation mode %q", c.Explanation.Mode))
		}
	}
	if c.Explanation.OracleTimeout <= 0 {
		errs = append(errs, "explanation.oracle_timeout must be positive")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// OracleConfig converts the explanation settings for the engine.
func (c Config) OracleConfig() explain.OracleConfig {
	oc := explain.DefaultOracleConfig()
	if c.Explanation.OracleTimeout > 0 {
		oc.Timeout = c.Explanation.OracleTimeout
	}
	if c.Explanation.OracleMaxTokens > 0 {
		oc.MaxTokens = c.Explanation.OracleMaxTokens
	}
	return oc
}

// ResolveLLM returns the provider settings to use and whether any provider
// is usable. An explicitly configured provider wins; otherwise the vendors'
// standard API key variables are probed and the configured models and
// resilience settings are kept.
func (c Config) ResolveLLM() (llm.Config, bool) {
	if c.LLM.Validate() == nil {
		return c.LLM, true
	}
	found, ok := llm.DiscoverConfig()
	if !ok {
		return c.LLM, false
	}
	found.Anthropic.Model = c.LLM.Anthropic.Model
	found.OpenAI.Model = c.LLM.OpenAI.Model
	found.Gemini.Model = c.LLM.Gemini.Model
	found.OpenRouter.Model = c.LLM.OpenRouter.Model
	found.Retry = c.LLM.Retry
	found.Breaker = c.LLM.Breaker
	found.Timeout = c.LLM.Timeout
	return found, true
}
