package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attempts "github.com/abhisek/promptlab/internal/history"
	"github.com/abhisek/promptlab/internal/store"
)

// stubEventRepo serves canned attempts.
type stubEventRepo struct {
	store.EventRepo
	records []store.AttemptEventRecord
	err     error
}

func (r *stubEventRepo) QueryAttempts(_ context.Context, opts store.QueryOpts) ([]store.AttemptEventRecord, error) {
	return r.records, r.err
}

func TestHistoryScreen_SessionOnly(t *testing.T) {
	h := attempts.New()
	h.Add("a sleepy cat", 50, "", 0, "Not solved")
	h.Add("bring a ladder", 80, "", 0, "Solved")

	s := New(h, nil)
	assert.Nil(t, s.Init())

	view := s.View(140, 30)
	assert.Contains(t, view, "This session (2)")
	assert.NotContains(t, view, "All attempts")
	assert.Contains(t, view, "bring a ladder")
	assert.Contains(t, view, "Just now")
	assert.Contains(t, view, "Creativity increased by 30%")

	// Tab does nothing without a store.
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, tabSession, s.tab)
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(attempts.New(), nil)
	assert.Contains(t, s.View(100, 20), "No attempts yet")
}

func TestHistoryScreen_Stored(t *testing.T) {
	repo := &stubEventRepo{records: []store.AttemptEventRecord{
		{Timestamp: time.Now(), AttemptEventData: store.AttemptEventData{LevelID: 2, Prompt: "an umbrella", Creativity: 50, Passed: true, Mode: "basic"}},
		{Timestamp: time.Now(), AttemptEventData: store.AttemptEventData{LevelID: 1, Prompt: "a rope", Creativity: 50, Passed: true, Mode: "basic"}},
	}}
	s := New(attempts.New(), repo)

	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, tabStored, s.tab)

	view := s.View(140, 30)
	assert.Contains(t, view, "All attempts (2)")
	assert.Contains(t, view, "an umbrella")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "cursor stops at the last row")
}

func TestHistoryScreen_StoredError(t *testing.T) {
	s := New(attempts.New(), &stubEventRepo{err: errors.New("disk on fire")})
	s.Update(s.Init()())
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Contains(t, s.View(100, 20), "disk on fire")
}
