package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/store"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	catalog := levels.Default()
	tracker := progress.New(catalog.Total())
	engine := explain.NewEngine(explain.WithSeed(7))
	return New(catalog, tracker, engine, opts...)
}

// unlockThrough marks levels 1..n complete.
func unlockThrough(t *testing.T, s *Session, n int) {
	t.Helper()
	for id := 1; id <= n; id++ {
		_, err := s.Progress().Complete(context.Background(), id)
		require.NoError(t, err)
	}
}

func TestNew_StartsOnFirstLevel(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, 1, s.Level().ID)
	assert.False(t, s.ParametersUnlocked())
	assert.Equal(t, ModeAuto, s.Mode())
	assert.Equal(t, explain.ModeBasic, s.EffectiveMode())
	assert.NotEmpty(t, s.ID())

	c, style, w := s.Sliders()
	assert.Equal(t, DefaultCreativity, c)
	assert.Empty(t, style)
	assert.Equal(t, DefaultStyleWeight, w)
}

func TestSetLevel_Refusals(t *testing.T) {
	s := newTestSession(t)

	_, err := s.SetLevel(2)
	assert.ErrorIs(t, err, ErrLevelLocked)

	_, err = s.SetLevel(99)
	assert.ErrorIs(t, err, ErrUnknownLevel)

	assert.Equal(t, 1, s.Level().ID)
}

func TestSubmit_EmptyPrompt(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSubmit_Failure(t *testing.T) {
	s := newTestSession(t)

	out, err := s.Submit(context.Background(), "a sleepy cat")
	require.NoError(t, err)

	assert.False(t, out.Completed)
	assert.False(t, out.Unlocked)
	assert.NotEmpty(t, out.Hint)
	assert.NotEmpty(t, out.Fragments)
	assert.Equal(t, explain.ModeBasic, out.Mode)
	assert.Empty(t, out.Title)
	assert.Equal(t, 1, s.Progress().HighestUnlocked())
	assert.Equal(t, 1, s.History().Len())
}

func TestSubmit_SuccessUnlocksNextLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	out, err := s.Submit(ctx, "bring a ladder")
	require.NoError(t, err)

	assert.True(t, out.Completed)
	assert.True(t, out.Unlocked)
	assert.False(t, out.GameComplete)
	assert.Empty(t, out.Hint)
	assert.Equal(t, []string{"ladder"}, out.Result.MatchedKeywords)
	assert.Equal(t, LevelCompleteTitle, out.Title)
	assert.Equal(t, "You have mastered Basic Prompt Usage!", out.Message)
	assert.Equal(t, "bring a ladder", out.StyledPrompt)
	assert.InDelta(t, 1.0, out.Temperature, 1e-9)
	assert.Equal(t, explain.Meter{Label: "Medium", Fill: 50}, out.Meter)
	assert.Equal(t, 2, s.Progress().HighestUnlocked())

	// Replaying a solved level unlocks nothing further.
	out, err = s.Submit(ctx, "use the stairs")
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.False(t, out.Unlocked)
	assert.Equal(t, 2, s.Progress().HighestUnlocked())

	_, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Level().ID)
}

func TestSubmit_ParameterLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	unlockThrough(t, s, 5)

	notice, err := s.SetLevel(6)
	require.NoError(t, err)
	assert.Equal(t, ParametersUnlockedNotice, notice)
	assert.True(t, s.ParametersUnlocked())
	assert.Equal(t, explain.ModeAnalytical, s.EffectiveMode())

	s.SetCreativity(20)
	out, err := s.Submit(ctx, "a dream landscape")
	require.NoError(t, err)
	assert.False(t, out.Completed)
	assert.True(t, out.Result.HasKeywordMatch)
	assert.False(t, out.Parameters.Passed)
	assert.Equal(t, "Creativity level too low! Set it to 40% or higher.", out.Parameters.Message)
	assert.NotEmpty(t, out.Hint)

	s.SetCreativity(60)
	out, err = s.Submit(ctx, "a dream landscape")
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.True(t, out.Parameters.Passed)
	assert.NotEmpty(t, out.Comparison)
}

func TestSliderClamping(t *testing.T) {
	s := newTestSession(t)
	s.SetCreativity(150)
	s.SetStyleWeight(-5)

	c, _, w := s.Sliders()
	assert.Equal(t, 100, c)
	assert.Equal(t, 0, w)
}

func TestSetStyle(t *testing.T) {
	s := newTestSession(t)
	unlockThrough(t, s, 7)
	_, err := s.SetLevel(8)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetStyle("cubism"), ErrUnknownStyle)
	require.NoError(t, s.SetStyle("vintage"))
	_, style, _ := s.Sliders()
	assert.Equal(t, "vintage", style)

	require.NoError(t, s.SetStyle(""))
	_, style, _ = s.Sliders()
	assert.Empty(t, style)
}

func TestSubmit_FinalLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	unlockThrough(t, s, 9)
	_, err := s.SetLevel(10)
	require.NoError(t, err)

	s.SetCreativity(90)
	s.SetStyleWeight(80)
	require.NoError(t, s.SetStyle("bauhaus"))

	out, err := s.Submit(ctx, "apollo 11 in bold shapes")
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.False(t, out.Unlocked)
	assert.True(t, out.GameComplete)
	assert.Equal(t, FinalCompleteTitle, out.Title)
	assert.Equal(t, FinalCompleteText, out.Message)
	assert.Equal(t, explain.ModeAnalytical, out.Mode)

	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrGameComplete)
}

func TestSetMode(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	require.NoError(t, s.SetMode(ctx, "smart"))
	assert.Equal(t, "analytical", s.Mode())
	assert.Equal(t, explain.ModeAnalytical, s.EffectiveMode())
	assert.Equal(t, "analytical", s.Progress().Mode())

	assert.Error(t, s.SetMode(ctx, "psychic"))

	require.NoError(t, s.SetMode(ctx, "AUTO"))
	assert.Equal(t, explain.ModeBasic, s.EffectiveMode())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	unlockThrough(t, s, 6)
	_, err := s.SetLevel(6)
	require.NoError(t, err)
	_, err = s.Submit(ctx, "nothing useful")
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 1, s.Level().ID)
	assert.Equal(t, 1, s.Progress().HighestUnlocked())
	assert.Zero(t, s.History().Len())
	assert.False(t, s.ParametersUnlocked())
}

func TestSubmit_RecordsAttempts(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "promptlab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog := levels.Default()
	tracker, err := progress.Load(ctx, st.ProgressRepo(), catalog.Total())
	require.NoError(t, err)
	s := New(catalog, tracker, explain.NewEngine(explain.WithSeed(1)), WithEvents(st.EventRepo()))

	_, err = s.Submit(ctx, "a cat")
	require.NoError(t, err)
	_, err = s.Submit(ctx, "a rope")
	require.NoError(t, err)

	recs, err := st.EventRepo().QueryAttempts(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a rope", recs[0].Prompt)
	assert.True(t, recs[0].Passed)
	assert.Equal(t, s.ID(), recs[0].SessionID)
	assert.Equal(t, "basic", recs[0].Mode)
	assert.False(t, recs[1].Passed)

	// Progress survives a reload.
	reloaded, err := progress.Load(ctx, st.ProgressRepo(), catalog.Total())
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.HighestUnlocked())
}
