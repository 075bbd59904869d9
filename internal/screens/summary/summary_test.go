package summary

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/router"
)

func testSession(t *testing.T, solved int) *game.Session {
	t.Helper()
	catalog := levels.Default()
	tracker := progress.New(catalog.Total())
	for id := 1; id <= solved; id++ {
		tracker.RecordAttempt(id)
		if _, err := tracker.Complete(context.Background(), id); err != nil {
			t.Fatalf("complete level %d: %v", id, err)
		}
	}
	return game.New(catalog, tracker, explain.NewEngine(explain.WithSeed(1)))
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSession(t, 0))
	if s.Title() != "Journey Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Journey Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSession(t, 2))
	view := s.View(100, 30)
	if !strings.Contains(view, "Your journey so far") {
		t.Error("expected in-progress title")
	}
	if !strings.Contains(view, "solved in 1 attempt") {
		t.Error("expected completion detail for solved levels")
	}
	if strings.Contains(view, "Congratulations on completing") {
		t.Error("banner should only show when every level is solved")
	}
}

func TestSummaryScreen_GameComplete(t *testing.T) {
	s := New(testSession(t, 10))
	view := s.View(100, 30)
	if !strings.Contains(view, "Game Complete!") {
		t.Error("expected game complete title")
	}
	if !strings.Contains(view, "completing all levels") {
		t.Error("expected game complete banner")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSession(t, 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
