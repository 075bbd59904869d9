package explain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/abhisek/promptlab/internal/llm"
)

// StaticFallback is returned when every strategy fails.
const StaticFallback = "Explanation generation failed, but your creation is great!"

// Engine runs explanation strategies behind a fallback chain: the
// requested strategy, then Basic, then a static sentence. Generate never
// returns an empty result.
type Engine struct {
	rng        Rand
	provider   llm.Provider
	oracleCfg  OracleConfig
	logger     *log.Logger
	custom     []Strategy
	strategies map[Mode]Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = NewLockedRand(seed) }
}

// WithProvider enables remote oracle explanations.
func WithProvider(p llm.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithOracleConfig overrides the oracle defaults.
func WithOracleConfig(cfg OracleConfig) Option {
	return func(e *Engine) { e.oracleCfg = cfg }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStrategy replaces the strategy registered for s.Mode().
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.custom = append(e.custom, s) }
}

// NewEngine builds an Engine with Basic, Analytical and Oracle strategies.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		oracleCfg:  DefaultOracleConfig(),
		logger:     log.New(io.Discard),
		strategies: make(map[Mode]Strategy),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewLockedRand(rand.Uint64())
	}

	analytical := NewAnalytical(e.rng)
	oracle := NewOracle(e.provider, analytical, e.rng, e.oracleCfg)
	oracle.logger = e.logger

	e.strategies[ModeBasic] = Basic{}
	e.strategies[ModeAnalytical] = analytical
	e.strategies[ModeOracle] = oracle
	for _, s := range e.custom {
		e.strategies[s.Mode()] = s
	}
	return e
}

// Rand returns the engine's random source.
func (e *Engine) Rand() Rand {
	return e.rng
}

// Strategy returns the strategy registered for m.
func (e *Engine) Strategy(m Mode) (Strategy, bool) {
	s, ok := e.strategies[m]
	return s, ok
}

// Generate explains in using mode, falling back as needed.
func (e *Engine) Generate(ctx context.Context, in Input, mode Mode) []Fragment {
	chain := make([]Strategy, 0, 2)
	if s, ok := e.strategies[mode]; ok {
		chain = append(chain, s)
	}
	if mode != ModeBasic {
		chain = append(chain, e.strategies[ModeBasic])
	}

	for _, s := range chain {
		frags, err := runStrategy(ctx, s, in)
		if err == nil && len(frags) > 0 {
			return frags
		}
		if err == nil {
			err = errors.New("no fragments")
		}
		e.logger.Warn("explanation strategy failed", "mode", s.Mode(), "level", in.LevelID, "error", err)
	}
	return []Fragment{{Category: CategoryGeneral, Text: StaticFallback}}
}

func runStrategy(ctx context.Context, s Strategy, in Input) (frags []Fragment, err error) {
	if s == nil {
		return nil, errors.New("strategy not registered")
	}
	defer func() {
		if r := recover(); r != nil {
			frags, err = nil, fmt.Errorf("strategy %s panicked: %v", s.Mode(), r)
		}
	}()
	return s.Explain(ctx, in)
}
