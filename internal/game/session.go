// Package game ties the catalog, evaluator, explanation engine, progress and
// history together into a single play session.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/promptlab/internal/evaluate"
	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/history"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/store"
)

// ModeAuto lets the session pick an explanation mode per level.
const ModeAuto = "auto"

// Default slider values for a fresh session.
const (
	DefaultCreativity  = 50
	DefaultStyleWeight = 0
)

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrLevelLocked  = errors.New("level is locked")
	ErrUnknownStyle = errors.New("style not available on this level")
	ErrEmptyPrompt  = errors.New("prompt is empty")
	ErrGameComplete = errors.New("all levels are complete")
)

// Session is one player's game: the level being played, the slider values,
// and the services an attempt flows through. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	catalog  *levels.Catalog
	progress *progress.Tracker
	history  *history.History
	engine   *explain.Engine
	events   store.EventRepo
	logger   *log.Logger

	level          levels.Level
	creativity     int
	style          string
	styleWeight    int
	mode           string
	paramsUnlocked bool
}

// Option configures a Session.
type Option func(*Session)

// WithEvents records every attempt in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Session) { s.events = repo }
}

// WithHistory shares an existing history instead of starting empty.
func WithHistory(h *history.History) Option {
	return func(s *Session) { s.history = h }
}

// WithLogger sets the logger used when event recording fails.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMode fixes the explanation mode. ModeAuto or "" picks per level.
func WithMode(mode string) Option {
	return func(s *Session) { s.mode = mode }
}

// New starts a session on the highest unlocked level (the last level when
// everything is complete).
func New(catalog *levels.Catalog, tracker *progress.Tracker, engine *explain.Engine, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		catalog:     catalog,
		progress:    tracker,
		engine:      engine,
		creativity:  DefaultCreativity,
		styleWeight: DefaultStyleWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.mode == "" {
		s.mode = tracker.Mode()
	}

	start := min(tracker.HighestUnlocked(), catalog.Total())
	if l, ok := catalog.Get(start); ok {
		s.enterLocked(l)
	}
	return s
}

// ID identifies the session in recorded events.
func (s *Session) ID() string { return s.id }

// Catalog returns the level catalog.
func (s *Session) Catalog() *levels.Catalog { return s.catalog }

// Progress returns the progress tracker.
func (s *Session) Progress() *progress.Tracker { return s.progress }

// History returns the attempt history.
func (s *Session) History() *history.History { return s.history }

// Level returns the level being played.
func (s *Session) Level() levels.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Sliders returns the current creativity, style and style weight.
func (s *Session) Sliders() (creativity int, style string, styleWeight int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creativity, s.style, s.styleWeight
}

// ParametersUnlocked reports whether the slider panel has been shown.
// Once unlocked it stays unlocked for the session.
func (s *Session) ParametersUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paramsUnlocked
}

// SetLevel switches to levelID. Locked and unknown levels are refused. It
// returns a notice when this level unlocks the parameter panel for the
// first time.
func (s *Session) SetLevel(levelID int) (string, error) {
	l, ok := s.catalog.Get(levelID)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}
	if !s.progress.IsPlayable(levelID) {
		return "", fmt.Errorf("%w: %d", ErrLevelLocked, levelID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterLocked(l), nil
}

func (s *Session) enterLocked(l levels.Level) string {
	s.level = l
	s.style = ""

	if !l.UnlockParameters || s.paramsUnlocked {
		return ""
	}
	s.paramsUnlocked = true
	return ParametersUnlockedNotice
}

// SetCreativity sets the creativity slider, clamped to [0,100].
func (s *Session) SetCreativity(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creativity = max(evaluate.MinParam, min(evaluate.MaxParam, v))
}

// SetStyleWeight sets the style weight slider, clamped to [0,100].
func (s *Session) SetStyleWeight(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styleWeight = max(evaluate.MinParam, min(evaluate.MaxParam, v))
}

// SetStyle selects one of the current level's styles. An empty style
// clears the selection.
func (s *Session) SetStyle(style string) error {
	style = strings.TrimSpace(style)

	s.mu.Lock()
	defer s.mu.Unlock()
	if style != "" && !s.level.HasStyle(style) {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	s.style = style
	return nil
}

// Mode returns the configured explanation mode name ("auto" when unset).
func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == "" {
		return ModeAuto
	}
	return s.mode
}

// SetMode fixes the explanation mode and saves it with the progress.
// Unknown names are rejected.
func (s *Session) SetMode(ctx context.Context, mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != ModeAuto {
		m, ok := explain.ParseMode(mode)
		if !ok {
			return fmt.Errorf("unknown explanation mode %q", mode)
		}
		mode = string(m)
	}

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return s.progress.SetMode(ctx, mode)
}

// EffectiveMode resolves the mode used for the current level.
func (s *Session) EffectiveMode() explain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveModeLocked()
}

func (s *Session) effectiveModeLocked() explain.Mode {
	if s.mode == "" || s.mode == ModeAuto {
		return explain.RecommendedMode(s.level.ID, s.paramsUnlocked)
	}
	m, _ := explain.ParseMode(s.mode)
	return m
}

// ComposeSafePrompt builds a prompt from the level's guided options.
func (s *Session) ComposeSafePrompt(core, tool, action string) string {
	return levels.ComposeSafePrompt(core, tool, action)
}
