// Package summary shows the player's journey across every level.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

// SummaryScreen displays per-level completion and, once everything is
// solved, the game complete banner.
type SummaryScreen struct {
	session *game.Session
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(session *game.Session) *SummaryScreen {
	return &SummaryScreen{session: session}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Journey Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	tracker := s.session.Progress()
	catalog := s.session.Catalog()

	var b strings.Builder

	title := "Your journey so far"
	if tracker.AllComplete() {
		title = game.GameCompleteNotice
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	done := tracker.CompletedCount()
	bar := components.NewProgressBar("Levels", float64(done)/float64(max(catalog.Total(), 1)), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, l := range catalog.All() {
		status := tracker.Status(l.ID)
		detail := status.String()
		if c, ok := tracker.Completion(l.ID); ok {
			detail = fmt.Sprintf("solved in %d %s", c.Attempts, plural(c.Attempts, "attempt"))
		}
		line := fmt.Sprintf("%s  %-2d %-36s %s", status.Icon(), l.ID, l.EducationalFocus, detail)

		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch status {
		case progress.StatusCompleted:
			style = style.Foreground(theme.Success)
		case progress.StatusUnlocked:
			style = style.Foreground(theme.Text)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if tracker.AllComplete() {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Banner(game.GameCompleteBanner, min(width-8, 72))))
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
