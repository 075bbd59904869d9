// Package stats shows per-level attempt counts and explanation model usage.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/llm"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/store"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

type tab int

const (
	tabLevels tab = iota
	tabLLM
	tabCount
)

type statsLoadedMsg struct {
	Levels  []store.LevelStats
	Purpose []store.LLMUsageStats
	Models  []store.LLMModelUsage
	Err     error
}

// StatsScreen displays aggregated attempt and LLM usage figures.
type StatsScreen struct {
	catalog   *levels.Catalog
	eventRepo store.EventRepo
	levels    []store.LevelStats
	purpose   []store.LLMUsageStats
	models    []store.LLMModelUsage
	tab       tab
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen. eventRepo may be nil when nothing is
// persisted.
func New(catalog *levels.Catalog, eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{catalog: catalog, eventRepo: eventRepo}
}

func (s *StatsScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		s.loaded = true
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsLoadedMsg
		if msg.Levels, msg.Err = repo.AttemptStats(ctx); msg.Err != nil {
			return msg
		}
		if msg.Purpose, msg.Err = repo.LLMUsageByPurpose(ctx); msg.Err != nil {
			return msg
		}
		msg.Models, msg.Err = repo.LLMUsageByModel(ctx)
		return msg
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch view"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.levels, s.purpose, s.models = msg.Levels, msg.Purpose, msg.Models
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.tab = (s.tab + 1) % tabCount
		case "shift+tab":
			s.tab = (s.tab - 1 + tabCount) % tabCount
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.eventRepo == nil {
		return dim(width, "\n\nStats are only kept when a database is open.")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return dim(width, "\n\n  Loading stats...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 1)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	var lines []string
	if s.tab == tabLLM {
		lines = s.llmLines()
	} else {
		lines = s.levelLines()
	}
	if len(lines) == 0 {
		return b.String() + dim(width, "Nothing recorded yet")
	}
	for _, line := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *StatsScreen) renderTabs() string {
	labels := []string{"🎯 Levels", "🔮 LLM usage"}
	var tabs []string
	for i, label := range labels {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if tab(i) == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, "     ")
}

func (s *StatsScreen) levelLines() []string {
	var lines []string
	totalAttempts, totalPassed := 0, 0
	for _, st := range s.levels {
		title := fmt.Sprintf("Level %d", st.LevelID)
		if s.catalog != nil {
			if lvl, ok := s.catalog.Get(st.LevelID); ok {
				title = lvl.Title()
			}
		}
		rate := 0
		if st.Attempts > 0 {
			rate = st.Passed * 100 / st.Attempts
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if st.Passed > 0 {
			style = style.Foreground(theme.Success)
		}
		lines = append(lines, style.Render(
			fmt.Sprintf("%-34s %4d attempts  %4d solved  %3d%%", truncate(title, 34), st.Attempts, st.Passed, rate)))
		totalAttempts += st.Attempts
		totalPassed += st.Passed
	}
	if len(lines) > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(
			fmt.Sprintf("Total: %d attempts, %d solved", totalAttempts, totalPassed)))
	}
	return lines
}

func (s *StatsScreen) llmLines() []string {
	var lines []string
	for _, u := range s.purpose {
		lines = append(lines, fmt.Sprintf("%-14s %4d calls  %7d in  %7d out  %5dms avg",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs))
	}
	if len(s.models) == 0 {
		return lines
	}

	lines = append(lines, "")
	var total float64
	for _, m := range s.models {
		cost := "n/a"
		if c := llm.LookupCost(m.Model); c != nil {
			v := c.Cost(m.InputTokens, m.OutputTokens)
			total += v
			cost = fmt.Sprintf("$%.4f", v)
		}
		lines = append(lines, fmt.Sprintf("%-28s %4d calls  %10s", truncate(m.Model, 28), m.Calls, cost))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(
		fmt.Sprintf("Estimated cost: $%.4f", total)))
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func dim(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render(text)
}
