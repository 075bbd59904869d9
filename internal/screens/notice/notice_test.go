package notice

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptlab/internal/router"
)

type continueMsg struct{}

func TestNotice_View(t *testing.T) {
	n := New("🎉 Level Complete!", "You have mastered Basic Prompt Usage!", nil)
	view := n.View(80, 20)
	assert.Contains(t, view, "Level Complete!")
	assert.Contains(t, view, "Basic Prompt Usage")
	assert.Equal(t, "🎉 Level Complete!", n.Title())
}

func TestNotice_EnterWithoutContinuePops(t *testing.T) {
	n := New("t", "m", nil)
	_, cmd := n.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestNotice_EnterRunsContinueOnce(t *testing.T) {
	n := New("t", "m", func() tea.Msg { return continueMsg{} })

	_, cmd := n.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd, "other keys are ignored")

	_, cmd = n.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, cmd = n.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "a closed notice does nothing")
}
