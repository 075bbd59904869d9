package explain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptlab/internal/llm"
)

type panicStrategy struct{ mode Mode }

func (p panicStrategy) Mode() Mode { return p.mode }

func (p panicStrategy) Explain(context.Context, Input) ([]Fragment, error) {
	panic("boom")
}

type errStrategy struct{ mode Mode }

func (e errStrategy) Mode() Mode { return e.mode }

func (e errStrategy) Explain(context.Context, Input) ([]Fragment, error) {
	return nil, errors.New("failed")
}

type emptyStrategy struct{ mode Mode }

func (e emptyStrategy) Mode() Mode { return e.mode }

func (e emptyStrategy) Explain(context.Context, Input) ([]Fragment, error) {
	return nil, nil
}

// slowProvider blocks until the context is done.
type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestEngine_RequestedModeRuns(t *testing.T) {
	e := NewEngine(WithSeed(1))
	frags := e.Generate(context.Background(), input("add a ladder", 0, "", 0, 1, "ladder"), ModeBasic)
	require.Len(t, frags, 2)
	assert.Equal(t, basicClosing, frags[1].Text)
}

func TestEngine_PanicFallsBackToBasic(t *testing.T) {
	e := NewEngine(WithSeed(1), WithStrategy(panicStrategy{ModeAnalytical}))
	frags := e.Generate(context.Background(), input("add a ladder", 50, "", 0, 6, "ladder"), ModeAnalytical)
	require.NotEmpty(t, frags)
	assert.Equal(t, basicClosing, frags[len(frags)-1].Text)
}

func TestEngine_ErrorAndEmptyFallBack(t *testing.T) {
	for _, s := range []Strategy{errStrategy{ModeAnalytical}, emptyStrategy{ModeAnalytical}} {
		e := NewEngine(WithSeed(1), WithStrategy(s))
		frags := e.Generate(context.Background(), input("x", 50, "", 0, 6), ModeAnalytical)
		require.Len(t, frags, 1)
		assert.Equal(t, basicClosing, frags[0].Text)
	}
}

func TestEngine_StaticFallbackWhenEverythingFails(t *testing.T) {
	e := NewEngine(
		WithSeed(1),
		WithStrategy(panicStrategy{ModeOracle}),
		WithStrategy(panicStrategy{ModeBasic}),
	)
	frags := e.Generate(context.Background(), input("x", 50, "", 0, 11), ModeOracle)
	require.Len(t, frags, 1)
	assert.Equal(t, StaticFallback, frags[0].Text)
	assert.Equal(t, CategoryGeneral, frags[0].Category)
}

func TestEngine_UnknownModeStillAnswers(t *testing.T) {
	e := NewEngine(WithSeed(1))
	frags := e.Generate(context.Background(), input("x", 50, "", 0, 1), Mode("nope"))
	require.Len(t, frags, 1)
	assert.Equal(t, basicClosing, frags[0].Text)
}

func TestEngine_SeededEnginesAgree(t *testing.T) {
	in := input("a lake", 50, "", 0, 4)
	a, b := NewEngine(WithSeed(9)), NewEngine(WithSeed(9))
	for i := 0; i < 10; i++ {
		assert.Equal(t,
			Texts(a.Generate(context.Background(), in, ModeAnalytical)),
			Texts(b.Generate(context.Background(), in, ModeAnalytical)))
	}
}

func TestOracle_MockPool(t *testing.T) {
	e := NewEngine(WithSeed(3))
	frags := e.Generate(context.Background(), input("a time river", 80, "surrealism", 50, 11), ModeOracle)
	require.Len(t, frags, 3)
	assert.True(t, strings.HasPrefix(frags[0].Text, "🤖 AI's Self-Analysis: "))
	assert.True(t, strings.HasSuffix(frags[0].Text, `, while incorporating my "memory" of surrealism artistic style`))
	assert.Equal(t, CategoryEducation, frags[1].Category)
}

func TestOracle_MockHighLow(t *testing.T) {
	o := NewOracle(nil, nil, NewLockedRand(1), DefaultOracleConfig())
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[o.mockExplanation("p", 1.6, "")] = true
	}
	assert.True(t, seen["Based on high creativity settings, I boldly explored various possible representations"])
	assert.Len(t, seen, 4)

	low := o.mockExplanation("p", 0.4, "")
	assert.NotContains(t, low, "boldly")
}

func TestOracle_Provider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"I painted a glowing river of clocks because high creativity let me bend time."}`),
	})
	e := NewEngine(WithSeed(1), WithProvider(mock))

	frags := e.Generate(context.Background(), input("time river", 80, "ink", 50, 7), ModeOracle)
	require.Len(t, frags, 3)
	assert.Equal(t, "🤖 AI's Self-Analysis: I painted a glowing river of clocks because high creativity let me bend time.", frags[0].Text)
	assert.Equal(t, CategoryCreativity, frags[0].Category)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, ExplanationSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, `"time river"`)
	assert.Contains(t, req.Messages[0].Content, `style "ink"`)
	assert.InDelta(t, 0.8, req.Temperature, 1e-9)
}

func TestOracle_ProviderErrorDegradesToAnalytical(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	e := NewEngine(WithSeed(1), WithProvider(mock))

	frags := e.Generate(context.Background(), input("a dreamy landscape", 50, "", 0, 6, "dream", "landscape"), ModeOracle)
	assert.True(t, hasCategory(frags, CategoryCreativity), "expected analytical output, got %v", Texts(frags))
	assert.True(t, hasCategory(frags, CategoryCombination))
}

func TestOracle_EmptyExplanationDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"explanation":"  "}`)})
	o := NewOracle(mock, nil, NewLockedRand(1), DefaultOracleConfig())
	frags, err := o.Explain(context.Background(), input("x", 50, "", 0, 6))
	require.NoError(t, err)
	assert.True(t, hasCategory(frags, CategoryCombination))
}

func TestOracle_TimeoutDegrades(t *testing.T) {
	cfg := OracleConfig{Timeout: 20 * time.Millisecond, MaxTokens: 50}
	e := NewEngine(WithSeed(1), WithProvider(slowProvider{}), WithOracleConfig(cfg))

	start := time.Now()
	frags := e.Generate(context.Background(), input("x", 50, "", 0, 6), ModeOracle)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, hasCategory(frags, CategoryCombination))
}

func TestBuildOracleMessage(t *testing.T) {
	msg, err := buildOracleMessage("a cat", 1.5, "")
	require.NoError(t, err)
	assert.Contains(t, msg, `"a cat", creativity level 1.50,`)
	assert.NotContains(t, msg, "style")
}
