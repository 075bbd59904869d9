package mcp

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

// setupTestServer creates a server over the built-in levels with
// in-memory progress.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	catalog := levels.Default()
	return NewServer(Config{
		Version:  "test",
		Catalog:  catalog,
		Progress: progress.New(catalog.Total()),
		Engine:   explain.NewEngine(explain.WithSeed(3)),
	})
}

func intPtr(v int) *int { return &v }

func TestNewServer(t *testing.T) {
	s := setupTestServer(t)
	if s.MCPServer() == nil {
		t.Fatal("expected underlying MCP server")
	}
}

func TestHandleLevels(t *testing.T) {
	s := setupTestServer(t)

	out, err := s.handleLevels(context.Background(), LevelsInput{})
	require.NoError(t, err)
	require.Len(t, out.Levels, 10)
	assert.Equal(t, "unlocked", out.Levels[0].Status)
	assert.Equal(t, "locked", out.Levels[1].Status)
	assert.False(t, out.Levels[0].Parameters)
	assert.True(t, out.Levels[5].Parameters)
	assert.Equal(t, "Choose your level - Start your AI learning journey!", out.Summary)
}

func TestHandleLevel(t *testing.T) {
	s := setupTestServer(t)

	out, err := s.handleLevel(context.Background(), LevelInput{LevelID: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, out.ID)
	require.NotNil(t, out.RequiredCreativity)
	assert.Equal(t, 65, *out.RequiredCreativity)
	require.NotNil(t, out.RequiredStyleWeight)
	assert.Equal(t, 60, *out.RequiredStyleWeight)
	assert.Contains(t, out.AvailableStyles, "cyberpunk")

	_, err = s.handleLevel(context.Background(), LevelInput{LevelID: 42})
	assert.ErrorContains(t, err, "level not found: 42")
}

func TestHandleCheck(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	t.Run("solved", func(t *testing.T) {
		out, err := s.handleCheck(ctx, AttemptInput{LevelID: 1, Prompt: "Bring a LADDER"})
		require.NoError(t, err)
		assert.True(t, out.Passed)
		assert.Equal(t, []string{"ladder"}, out.MatchedKeywords)
		assert.Empty(t, out.Hint)
		assert.InDelta(t, 1.0, out.Temperature, 1e-9)
	})

	t.Run("parameters too low", func(t *testing.T) {
		out, err := s.handleCheck(ctx, AttemptInput{LevelID: 7, Prompt: "a melting clock", Creativity: intPtr(30)})
		require.NoError(t, err)
		assert.False(t, out.Passed)
		assert.Equal(t, "Creativity level too low! Set it to 70% or higher.", out.ParameterNote)
		assert.NotEmpty(t, out.Hint)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := s.handleCheck(ctx, AttemptInput{LevelID: 0, Prompt: "x"})
		assert.ErrorContains(t, err, "level not found")

		_, err = s.handleCheck(ctx, AttemptInput{LevelID: 1, Prompt: "  "})
		assert.ErrorContains(t, err, "prompt is required")

		_, err = s.handleCheck(ctx, AttemptInput{LevelID: 8, Prompt: "coffee", Style: "gothic"})
		assert.ErrorContains(t, err, `style "gothic" is not available on level 8`)
	})
}

func TestHandleExplain(t *testing.T) {
	s := setupTestServer(t)

	out, err := s.handleExplain(context.Background(), AttemptInput{
		LevelID:     8,
		Prompt:      "a vintage coffee shop",
		Creativity:  intPtr(85),
		Style:       "vintage",
		StyleWeight: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, "analytical", out.Mode)
	assert.NotEmpty(t, out.Explanations)
	assert.Equal(t, "Very High (90%)", out.Randomness)
	assert.Contains(t, out.StyledPrompt, "Masterpiece, best quality")
	for _, e := range out.Explanations {
		assert.NotEmpty(t, e.Text)
		assert.NotEmpty(t, e.Icon)
	}

	out, err = s.handleExplain(context.Background(), AttemptInput{LevelID: 2, Prompt: "an umbrella", Mode: "basic"})
	require.NoError(t, err)
	assert.Equal(t, "basic", out.Mode)
}

func TestHandleMode(t *testing.T) {
	ctx := context.Background()
	s := setupTestServer(t)

	out, err := s.handleMode(ctx, ModeInput{})
	require.NoError(t, err)
	assert.Equal(t, "auto", out.Mode)
	assert.Equal(t, []string{"auto", "basic", "analytical", "oracle"}, out.Modes)

	out, err = s.handleMode(ctx, ModeInput{Mode: "smart"})
	require.NoError(t, err)
	assert.Equal(t, "analytical", out.Mode)
	assert.Equal(t, "analytical", s.progress.Mode())

	// The saved mode now applies when a request names none.
	ex, err := s.handleExplain(ctx, AttemptInput{LevelID: 1, Prompt: "a rope"})
	require.NoError(t, err)
	assert.Equal(t, "analytical", ex.Mode)

	_, err = s.handleMode(ctx, ModeInput{Mode: "psychic"})
	assert.ErrorContains(t, err, `unknown mode "psychic"`)
}

func TestHandleCheck_RecordsAttempts(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "mcp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog := levels.Default()
	s := NewServer(Config{
		Catalog:  catalog,
		Progress: progress.New(catalog.Total()),
		Engine:   explain.NewEngine(explain.WithSeed(1)),
		Events:   st.EventRepo(),
	})

	_, err = s.handleCheck(ctx, AttemptInput{LevelID: 2, Prompt: "an umbrella"})
	require.NoError(t, err)

	recs, err := st.EventRepo().QueryAttempts(ctx, store.QueryOpts{LevelID: 2})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Passed)
	assert.Equal(t, "basic", recs[0].Mode)
	assert.Contains(t, recs[0].SessionID, "mcp-")
}
