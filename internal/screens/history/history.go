// Package history shows recent parameter combinations and stored attempts.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	attempts "github.com/abhisek/promptlab/internal/history"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/store"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

// storedLimit caps how many stored attempts are loaded.
const storedLimit = 50

type tab int

const (
	tabSession tab = iota
	tabStored
)

type attemptsLoadedMsg struct {
	Records []store.AttemptEventRecord
	Err     error
}

// HistoryScreen lists this session's parameter history and, when a store is
// configured, every recorded attempt.
type HistoryScreen struct {
	history   *attempts.History
	eventRepo store.EventRepo
	stored    []store.AttemptEventRecord
	tab       tab
	selected  int
	loaded    bool
	errMsg    string
	now       func() time.Time
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. eventRepo may be nil.
func New(h *attempts.History, eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{history: h, eventRepo: eventRepo, now: time.Now}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		s.loaded = true
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		records, err := repo.QueryAttempts(context.Background(), store.QueryOpts{Limit: storedLimit})
		return attemptsLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if s.eventRepo != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Session/All"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stored = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			if s.eventRepo != nil {
				s.tab = 1 - s.tab
				s.selected = 0
			}
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rowCount()-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) rowCount() int {
	if s.tab == tabStored {
		return len(s.stored)
	}
	return s.history.Len()
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	if s.tab == tabStored {
		b.WriteString(s.renderStored(width))
	} else {
		b.WriteString(s.renderSession(width))
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	idle := lipgloss.NewStyle().Foreground(theme.TextDim)

	sessionLabel := fmt.Sprintf("📜 This session (%d)", s.history.Len())
	if s.eventRepo == nil {
		return active.Render(sessionLabel)
	}
	storedLabel := fmt.Sprintf("🗄 All attempts (%d)", len(s.stored))
	if s.tab == tabStored {
		return idle.Render(sessionLabel) + "     " + active.Render(storedLabel)
	}
	return active.Render(sessionLabel) + "     " + idle.Render(storedLabel)
}

func (s *HistoryScreen) renderSession(width int) string {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return emptyLine(width, "No attempts yet. Start creating!")
	}

	var b strings.Builder
	now := s.now()
	for i, e := range entries {
		line := fmt.Sprintf("%s%-12s %-42s  🎨 %3d%%  🎭 %-16s %s",
			cursor(i == s.selected),
			attempts.TimeAgo(e.Timestamp, now),
			e.Prompt,
			e.Creativity,
			e.StyleInfo(),
			e.Result,
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rowStyle(i == s.selected, e.Result == "Solved").Render(line)))
		b.WriteString("\n")
	}

	if insights := s.history.Compare(); len(insights) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(attempts.ComparisonTitle)))
		b.WriteString("\n")
		for _, in := range insights {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(in)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderStored(width int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %s", s.errMsg))
	case !s.loaded:
		return emptyLine(width, "Loading history...")
	case len(s.stored) == 0:
		return emptyLine(width, "No attempts recorded yet.")
	}

	var b strings.Builder
	for i, r := range s.stored {
		verdict := "✗"
		if r.Passed {
			verdict = "✓"
		}
		line := fmt.Sprintf("%s%s  L%-2d %s %-40s  🎨 %3d%%  %s",
			cursor(i == s.selected),
			r.Timestamp.Local().Format("Jan 02 15:04"),
			r.LevelID,
			verdict,
			attempts.TruncatePrompt(r.Prompt),
			r.Creativity,
			r.Mode,
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rowStyle(i == s.selected, r.Passed).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func cursor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func rowStyle(selected, passed bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		style = style.Foreground(theme.Primary).Bold(true)
	case passed:
		style = style.Foreground(theme.Success)
	}
	return style
}

func emptyLine(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render(text)
}
