package levelselect

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

// LevelDetailScreen shows one level's problem, focus and requirements.
type LevelDetailScreen struct {
	level    levels.Level
	progress *progress.Tracker
	play     PlayFunc
}

var _ screen.Screen = (*LevelDetailScreen)(nil)
var _ screen.KeyHintProvider = (*LevelDetailScreen)(nil)

func newLevelDetail(l levels.Level, tracker *progress.Tracker, play PlayFunc) *LevelDetailScreen {
	return &LevelDetailScreen{level: l, progress: tracker, play: play}
}

func (d *LevelDetailScreen) Init() tea.Cmd { return nil }
func (d *LevelDetailScreen) Title() string { return fmt.Sprintf("Level %d", d.level.ID) }

func (d *LevelDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" {
		return d, nil
	}
	if d.play == nil || !d.progress.IsPlayable(d.level.ID) {
		return d, nil
	}
	next := d.play(d.level.ID)
	if next == nil {
		return d, nil
	}
	return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (d *LevelDetailScreen) KeyHints() []layout.KeyHint {
	if d.progress.IsPlayable(d.level.ID) {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Play"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (d *LevelDetailScreen) View(width, height int) string {
	l := d.level
	status := d.progress.Status(l.ID)
	contentWidth := min(width-8, 70)

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  Level %d", status.Icon(), l.ID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + status.String()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(l.Problem))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  Focus:       ") + valStyle.Render(l.EducationalFocus) + "\n")
	b.WriteString(dimStyle.Render("  Difficulty:  ") + valStyle.Render(string(l.Difficulty)) + "\n")
	if c, ok := d.progress.Completion(l.ID); ok {
		b.WriteString(dimStyle.Render("  Solved:      ") +
			valStyle.Render(fmt.Sprintf("%s after %d attempts", c.CompletedAt.Local().Format("Jan 2 15:04"), c.Attempts)) + "\n")
	}
	b.WriteString("\n")

	if l.Why != "" {
		b.WriteString(heading.Render("  Why it matters"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.TextDim).
			PaddingLeft(2).
			Render(l.Why))
		b.WriteString("\n\n")
	}

	if l.UnlockParameters {
		b.WriteString(heading.Render("  Parameters"))
		b.WriteString("\n")
		if t := l.CreativityTarget(); t != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  Creativity    at least %d%%", *t)) + "\n")
		}
		if t := l.StyleWeightTarget(); t != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  Style weight  at least %d%%", *t)) + "\n")
		}
		if len(l.AvailableStyles) > 0 {
			b.WriteString(dimStyle.Render("  Styles        "+strings.Join(l.AvailableStyles, ", ")) + "\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
