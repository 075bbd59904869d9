// Package mcp exposes the level catalog, evaluator and explanation engine
// as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"
	"github.com/google/uuid"

	"github.com/abhisek/promptlab/internal/evaluate"
	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/store"
)

// Server wraps the MCP server with PromptLab functionality.
type Server struct {
	mcpServer *server.Server
	catalog   *levels.Catalog
	progress  *progress.Tracker
	engine    *explain.Engine
	events    store.EventRepo
	logger    *log.Logger
	sessionID string
}

// Config contains configuration for the MCP server. Events and Logger are
// optional.
type Config struct {
	Version  string
	Catalog  *levels.Catalog
	Progress *progress.Tracker
	Engine   *explain.Engine
	Events   store.EventRepo
	Logger   *log.Logger
}

// NewServer creates a new MCP server for PromptLab.
func NewServer(cfg Config) *Server {
	s := &Server{
		catalog:   cfg.Catalog,
		progress:  cfg.Progress,
		engine:    cfg.Engine,
		events:    cfg.Events,
		logger:    cfg.Logger,
		sessionID: "mcp-" + uuid.NewString(),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s.mcpServer = server.New(server.Info{
		Name:    "promptlab",
		Version: version,
	}, server.WithInstructions(`
PromptLab is a puzzle game that teaches how image-generation parameters
shape results. Each level poses a problem; a prompt solves it by naming a
solution, and later levels also require creativity and style weight
thresholds.

Available tools:
- promptlab_levels: List levels with their progress status
- promptlab_level: Show one level's problem, requirements and hints
- promptlab_check: Check a prompt and slider values against a level
- promptlab_explain: Explain how the prompt and sliders shape the image
- promptlab_mode: Get or set the explanation mode (auto, basic, analytical, oracle)
`))

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("promptlab_levels").
		Description("List all levels with difficulty and progress status.").
		Handler(s.handleLevels)

	s.mcpServer.Tool("promptlab_level").
		Description("Show a level's problem, parameter requirements, styles and hints.").
		Handler(s.handleLevel)

	s.mcpServer.Tool("promptlab_check").
		Description("Check whether a prompt with the given sliders solves a level.").
		Handler(s.handleCheck)

	s.mcpServer.Tool("promptlab_explain").
		Description("Explain how a prompt and slider values shape the generated image.").
		Handler(s.handleExplain)

	s.mcpServer.Tool("promptlab_mode").
		Description("Get or set the explanation mode.").
		Handler(s.handleMode)
}

// Input/Output types for tools

type LevelsInput struct{}

type LevelSummary struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Status     string `json:"status"`
	Parameters bool   `json:"parameters"`
}

type LevelsOutput struct {
	Levels  []LevelSummary `json:"levels"`
	Summary string         `json:"summary"`
}

type LevelInput struct {
	LevelID int `json:"level_id" jsonschema:"description=Level number starting at 1"`
}

type LevelOutput struct {
	ID                  int      `json:"id"`
	Problem             string   `json:"problem"`
	EducationalFocus    string   `json:"educational_focus"`
	Why                 string   `json:"why"`
	Difficulty          string   `json:"difficulty"`
	Status              string   `json:"status"`
	Parameters          bool     `json:"parameters"`
	RequiredCreativity  *int     `json:"required_creativity,omitempty"`
	RequiredStyleWeight *int     `json:"required_style_weight,omitempty"`
	AvailableStyles     []string `json:"available_styles,omitempty"`
	Hints               []string `json:"hints,omitempty"`
	GuidedOptions       []string `json:"guided_options,omitempty"`
}

type AttemptInput struct {
	LevelID     int    `json:"level_id" jsonschema:"description=Level number starting at 1"`
	Prompt      string `json:"prompt" jsonschema:"description=Image prompt text"`
	Creativity  *int   `json:"creativity,omitempty" jsonschema:"description=Creativity slider 0-100 (default: 50)"`
	Style       string `json:"style,omitempty" jsonschema:"description=Art style; must be one of the level's styles"`
	StyleWeight int    `json:"style_weight,omitempty" jsonschema:"description=Style weight slider 0-100"`
	Mode        string `json:"mode,omitempty" jsonschema:"description=Explanation mode: auto or basic or analytical or oracle"`
}

type CheckOutput struct {
	Passed          bool     `json:"passed"`
	MatchedKeywords []string `json:"matched_keywords"`
	ParameterNote   string   `json:"parameter_note,omitempty"`
	Hint            string   `json:"hint,omitempty"`
	StyledPrompt    string   `json:"styled_prompt"`
	Temperature     float64  `json:"temperature"`
}

type ExplanationItem struct {
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Text     string `json:"text"`
}

type ExplainOutput struct {
	Mode         string            `json:"mode"`
	Explanations []ExplanationItem `json:"explanations"`
	Randomness   string            `json:"randomness"`
	StyledPrompt string            `json:"styled_prompt"`
	Temperature  float64           `json:"temperature"`
}

type ModeInput struct {
	Mode string `json:"mode,omitempty" jsonschema:"description=New mode; omit to read the current one,enum=auto,enum=basic,enum=analytical,enum=oracle"`
}

type ModeOutput struct {
	Mode  string   `json:"mode"`
	Modes []string `json:"modes"`
}

// Tool handlers

func (s *Server) handleLevels(ctx context.Context, _ LevelsInput) (LevelsOutput, error) {
	out := LevelsOutput{Summary: s.progress.Summary()}
	for _, l := range s.catalog.All() {
		out.Levels = append(out.Levels, LevelSummary{
			ID:         l.ID,
			Title:      l.Title(),
			Difficulty: string(l.Difficulty),
			Status:     s.progress.Status(l.ID).String(),
			Parameters: l.UnlockParameters,
		})
	}
	return out, nil
}

func (s *Server) handleLevel(ctx context.Context, input LevelInput) (LevelOutput, error) {
	l, err := s.level(input.LevelID)
	if err != nil {
		return LevelOutput{}, err
	}

	out := LevelOutput{
		ID:               l.ID,
		Problem:          l.Problem,
		EducationalFocus: l.EducationalFocus,
		Why:              l.Why,
		Difficulty:       string(l.Difficulty),
		Status:           s.progress.Status(l.ID).String(),
		Parameters:       l.UnlockParameters,
		AvailableStyles:  l.AvailableStyles,
		Hints:            l.Hints,

		RequiredCreativity:  l.CreativityTarget(),
		RequiredStyleWeight: l.StyleWeightTarget(),
	}
	for _, o := range l.SafeMode.SolutionTools {
		out.GuidedOptions = append(out.GuidedOptions, o.Text)
	}
	return out, nil
}

func (s *Server) handleCheck(ctx context.Context, input AttemptInput) (CheckOutput, error) {
	l, a, err := s.attempt(input)
	if err != nil {
		return CheckOutput{}, err
	}

	r := evaluate.CheckWinCondition(a, l)
	out := CheckOutput{
		Passed:          r.Passed,
		MatchedKeywords: r.MatchedKeywords,
		StyledPrompt:    evaluate.StyledPrompt(a.Prompt, a.Style, a.StyleWeight),
		Temperature:     evaluate.Temperature(a.Creativity),
	}
	if pc := evaluate.CheckParameterRequirements(a, l); r.HasKeywordMatch && !pc.Passed {
		out.ParameterNote = pc.Message
	}
	if !r.Passed {
		out.Hint = evaluate.IntelligentHint(a, l, s.engine.Rand())
	}

	s.record(ctx, a, l, r, s.resolveMode(input.Mode, l))
	return out, nil
}

func (s *Server) handleExplain(ctx context.Context, input AttemptInput) (ExplainOutput, error) {
	l, a, err := s.attempt(input)
	if err != nil {
		return ExplainOutput{}, err
	}

	mode := s.resolveMode(input.Mode, l)
	r := evaluate.CheckWinCondition(a, l)
	frags := s.engine.Generate(ctx, explain.NewInput(a, l, r), mode)

	meter := explain.RandomnessMeter(a.Creativity)
	out := ExplainOutput{
		Mode:         string(mode),
		Randomness:   fmt.Sprintf("%s (%d%%)", meter.Label, meter.Fill),
		StyledPrompt: evaluate.StyledPrompt(a.Prompt, a.Style, a.StyleWeight),
		Temperature:  evaluate.Temperature(a.Creativity),
	}
	for _, f := range frags {
		out.Explanations = append(out.Explanations, ExplanationItem{
			Category: f.Category.DisplayName(),
			Icon:     f.Category.Icon(),
			Text:     f.Text,
		})
	}
	return out, nil
}

func (s *Server) handleMode(ctx context.Context, input ModeInput) (ModeOutput, error) {
	out := ModeOutput{Modes: []string{"auto"}}
	for _, m := range explain.Modes() {
		out.Modes = append(out.Modes, string(m))
	}

	name := strings.ToLower(strings.TrimSpace(input.Mode))
	if name == "" {
		out.Mode = s.savedMode()
		return out, nil
	}
	if name != "auto" {
		m, ok := explain.ParseMode(name)
		if !ok {
			return ModeOutput{}, fmt.Errorf("unknown mode %q", input.Mode)
		}
		name = string(m)
	}
	if err := s.progress.SetMode(ctx, name); err != nil {
		return ModeOutput{}, fmt.Errorf("failed to save mode: %w", err)
	}
	out.Mode = name
	return out, nil
}

func (s *Server) level(id int) (levels.Level, error) {
	l, ok := s.catalog.Get(id)
	if !ok {
		return levels.Level{}, fmt.Errorf("level not found: %d", id)
	}
	return l, nil
}

func (s *Server) attempt(input AttemptInput) (levels.Level, evaluate.Attempt, error) {
	l, err := s.level(input.LevelID)
	if err != nil {
		return levels.Level{}, evaluate.Attempt{}, err
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return levels.Level{}, evaluate.Attempt{}, fmt.Errorf("prompt is required")
	}
	if input.Style != "" && !l.HasStyle(input.Style) {
		return levels.Level{}, evaluate.Attempt{}, fmt.Errorf("style %q is not available on level %d", input.Style, l.ID)
	}

	creativity := 50
	if input.Creativity != nil {
		creativity = *input.Creativity
	}
	return l, evaluate.NewAttempt(input.Prompt, creativity, input.Style, input.StyleWeight), nil
}

// resolveMode picks the explanation mode: the request's, then the saved
// one, then the level's recommendation.
func (s *Server) resolveMode(requested string, l levels.Level) explain.Mode {
	name := strings.ToLower(strings.TrimSpace(requested))
	if name == "" {
		name = s.savedMode()
	}
	if name == "auto" {
		return explain.RecommendedMode(l.ID, l.UnlockParameters)
	}
	m, _ := explain.ParseMode(name)
	return m
}

func (s *Server) savedMode() string {
	if m := s.progress.Mode(); m != "" {
		return m
	}
	return "auto"
}

func (s *Server) record(ctx context.Context, a evaluate.Attempt, l levels.Level, r evaluate.Result, mode explain.Mode) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAttempt(ctx, store.AttemptEventData{
		SessionID:       s.sessionID,
		LevelID:         l.ID,
		Prompt:          a.Prompt,
		Creativity:      a.Creativity,
		Style:           a.Style,
		StyleWeight:     a.StyleWeight,
		Passed:          r.Passed,
		MatchedKeywords: r.MatchedKeywords,
		Mode:            string(mode),
	})
	if err != nil {
		s.logger.Warn("failed to record attempt", "level", l.ID, "err", err)
	}
}

// ServeStdio starts the MCP server on stdio.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.Server {
	return s.mcpServer
}
