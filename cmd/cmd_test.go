package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against an isolated config and database.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"PROMPTLAB_DB", "PROMPTLAB_LLM_PROVIDER", "PROMPTLAB_LOG_LEVEL",
		"PROMPTLAB_ANTHROPIC_API_KEY", "PROMPTLAB_OPENAI_API_KEY",
		"PROMPTLAB_GEMINI_API_KEY", "PROMPTLAB_OPENROUTER_API_KEY",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(name, "")
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--db", db, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "v.db"), "version")
	require.NoError(t, err)
	assert.Equal(t, "promptlab (devel)\n", out)
}

func TestLevelsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "levels.db")

	out, err := run(t, db, "levels", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Choose your level - Start your AI learning journey!")
	assert.Contains(t, out, "beginner")
	assert.Contains(t, out, "unlocked")

	out, err = run(t, db, "levels", "show", "9", "--hints")
	require.NoError(t, err)
	assert.Contains(t, out, "Level 9")
	assert.Contains(t, out, "Creativity:  65% or higher")
	assert.Contains(t, out, "Hints:")

	_, err = run(t, db, "levels", "show", "99")
	assert.ErrorContains(t, err, "level 99 not found")
}

func TestCheckProgressAndReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "game.db")

	out, err := run(t, db, "check", "--level", "1", "a", "sleepy", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ Not quite!")
	assert.Contains(t, out, "💡")

	out, err = run(t, db, "check", "--level", "1", "--explain", "bring", "a", "ladder")
	require.NoError(t, err)
	assert.Contains(t, out, "🎉 Level Complete!")
	assert.Contains(t, out, "Matched:     ladder")
	assert.Contains(t, out, "How the AI saw it")

	out, err = run(t, db, "progress", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved 1 of 10 levels")

	out, err = run(t, db, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "bring a ladder")
	assert.Contains(t, out, "a sleepy cat")

	out, err = run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "50%")

	_, err = run(t, db, "check", "--level", "5", "anything")
	assert.ErrorContains(t, err, "level is locked")

	_, err = run(t, db, "reset")
	assert.ErrorContains(t, err, "--yes")

	out, err = run(t, db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset")

	out, err = run(t, db, "progress", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved 0 of 10 levels")
}

func TestLLMListEmpty(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "llm.db"), "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")
}
