package levelselect

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
)

type stubScreen struct{ id int }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "play" }
func (s *stubScreen) Title() string                           { return "Play" }

func keyPress(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func newTestScreen(t *testing.T, solved int) (*LevelSelectScreen, *[]int) {
	t.Helper()
	catalog := levels.Default()
	tracker := progress.New(catalog.Total())
	for id := 1; id <= solved; id++ {
		_, err := tracker.Complete(context.Background(), id)
		require.NoError(t, err)
	}
	var played []int
	s := New(catalog, tracker, func(id int) screen.Screen {
		played = append(played, id)
		return &stubScreen{id: id}
	})
	return s, &played
}

func TestNew_CursorOnHighestUnlocked(t *testing.T) {
	s, _ := newTestScreen(t, 2)
	l, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, l.ID)
}

func TestNavigationSkipsHeaders(t *testing.T) {
	s, _ := newTestScreen(t, 0)
	l, _ := s.Selected()
	assert.Equal(t, 1, l.ID)

	s.Update(keyPress(tea.KeyUp))
	l, _ = s.Selected()
	assert.Equal(t, 1, l.ID, "no level above the first")

	for range 20 {
		s.Update(keyPress(tea.KeyDown))
	}
	l, _ = s.Selected()
	assert.Equal(t, 10, l.ID)
}

func TestEnter_PlayableLevelPushesPlay(t *testing.T) {
	s, played := newTestScreen(t, 1)

	_, cmd := s.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.Screen.(*stubScreen).id)
	assert.Equal(t, []int{2}, *played)

	// Replaying a solved level is allowed.
	s.Update(keyPress(tea.KeyUp))
	_, cmd = s.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
}

func TestEnter_LockedLevelDoesNothing(t *testing.T) {
	s, played := newTestScreen(t, 0)
	s.Update(keyPress(tea.KeyDown))
	l, _ := s.Selected()
	require.Equal(t, 2, l.ID)

	_, cmd := s.Update(keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, *played)
}

func TestDetail(t *testing.T) {
	s, played := newTestScreen(t, 0)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	detail, ok := push.Screen.(*LevelDetailScreen)
	require.True(t, ok)
	assert.Equal(t, "Level 1", detail.Title())
	assert.Contains(t, detail.View(100, 40), "Basic Prompt Usage")

	_, cmd = detail.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, ok = cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, *played)
}

func TestView(t *testing.T) {
	s, _ := newTestScreen(t, 1)
	view := s.View(100, 30)
	assert.Contains(t, view, Heading)
	assert.Contains(t, view, "BEGINNER")
	assert.Contains(t, view, "completed")
}
