package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/promptlab/internal/evaluate"
	"github.com/abhisek/promptlab/internal/llm"
)

// OracleConfig holds configuration for the remote self-explanation.
type OracleConfig struct {
	Timeout   time.Duration
	MaxTokens int
}

// DefaultOracleConfig returns sensible defaults.
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		Timeout:   8 * time.Second,
		MaxTokens: 200,
	}
}

// Oracle asks a text-generation model to explain its own choices. Without a
// provider it answers from a small pool of canned self-descriptions. Any
// failure degrades to the fallback strategy with the same input.
type Oracle struct {
	provider llm.Provider
	fallback Strategy
	rng      Rand
	cfg      OracleConfig
	logger   *log.Logger
}

var _ Strategy = (*Oracle)(nil)

// NewOracle creates an Oracle. provider may be nil. A nil fallback selects
// Analytical.
func NewOracle(provider llm.Provider, fallback Strategy, rng Rand, cfg OracleConfig) *Oracle {
	if fallback == nil {
		fallback = NewAnalytical(rng)
	}
	return &Oracle{
		provider: provider,
		fallback: fallback,
		rng:      rng,
		cfg:      cfg,
		logger:   log.New(io.Discard),
	}
}

func (o *Oracle) Mode() Mode { return ModeOracle }

func (o *Oracle) Explain(ctx context.Context, in Input) ([]Fragment, error) {
	text, err := o.selfAnalysis(ctx, in)
	if err != nil {
		o.logger.Warn("oracle explanation failed, using fallback", "error", err, "fallback", o.fallback.Mode())
		return o.fallback.Explain(ctx, in)
	}

	selfText := "🤖 AI's Self-Analysis: " + text
	return []Fragment{
		{Category: Classify(selfText), Text: selfText},
		{Category: CategoryEducation, Text: `🎭 This is AI attempting to explain its own creative process, but remember AI doesn't truly "understand" what it's doing`},
		{Category: CategoryTechnical, Text: `🔬 This "AI meta-cognition" demonstrates interesting characteristics of machine learning`},
	}, nil
}

func (o *Oracle) selfAnalysis(ctx context.Context, in Input) (string, error) {
	temperature := evaluate.Temperature(in.Creativity)
	if o.provider == nil {
		return o.mockExplanation(in.Prompt, temperature, in.Style), nil
	}
	return o.remoteExplanation(ctx, in, temperature)
}

func (o *Oracle) mockExplanation(prompt string, temperature float64, style string) string {
	level, verb := "low", "conservatively chose"
	if temperature > 1 {
		level, verb = "high", "boldly explored"
	}
	pool := []string{
		fmt.Sprintf(`I analyzed the concept "%s" and found the most relevant visual patterns from training data`, prompt),
		fmt.Sprintf("Based on %s creativity settings, I %s various possible representations", level, verb),
		"I tried to transform text concepts into concrete visual elements, this is what I do best",
		"Through neural network calculations, I found the image representation that best matches training data patterns",
	}
	s := pick(o.rng, pool)
	if style != "" {
		s += fmt.Sprintf(`, while incorporating my "memory" of %s artistic style`, style)
	}
	return s
}

type oracleOutput struct {
	Explanation string `json:"explanation"`
}

func (o *Oracle) remoteExplanation(ctx context.Context, in Input, temperature float64) (string, error) {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "explanation")

	userMsg, err := buildOracleMessage(in.Prompt, temperature, in.Style)
	if err != nil {
		return "", fmt.Errorf("build oracle prompt: %w", err)
	}

	resp, err := o.provider.Generate(ctx, llm.Request{
		System:      oracleSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      ExplanationSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: min(temperature/2, 1),
	})
	if err != nil {
		return "", fmt.Errorf("oracle generate: %w", err)
	}

	var out oracleOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse oracle response: %w", err)
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		return "", errors.New("oracle returned an empty explanation")
	}
	return text, nil
}

// ExplanationSchema is the structured output requested from the model.
var ExplanationSchema = &llm.Schema{
	Name:        "image-self-explanation",
	Description: "A one-sentence explanation of how the image was generated",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One sentence, first person, suitable for 13-16 year old students",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

const oracleSystemPrompt = `You are an AI image generation assistant explaining your own creative process to students aged 13-16.

Instructions:
- Answer in exactly one sentence, in the first person.
- Describe how you would turn the prompt into an image and why.
- Mention the creativity level and style when they are given.
- Do not claim feelings or true understanding.`

var oracleUserTemplate = template.Must(template.New("oracle").Parse(`Based on the prompt "{{.Prompt}}", creativity level {{printf "%.2f" .Temperature}}{{if .Style}}, style "{{.Style}}"{{end}},
how would you generate an image and why would you make such choices?`))

func buildOracleMessage(prompt string, temperature float64, style string) (string, error) {
	var buf bytes.Buffer
	err := oracleUserTemplate.Execute(&buf, struct {
		Prompt      string
		Temperature float64
		Style       string
	}{prompt, temperature, style})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
