// Package explanation shows the full explanation for one submission.
package explanation

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/history"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

// ExplanationScreen renders an Outcome's fragments in a scrollable view.
type ExplanationScreen struct {
	outcome  game.Outcome
	viewport viewport.Model
	width    int
}

var _ screen.Screen = (*ExplanationScreen)(nil)
var _ screen.KeyHintProvider = (*ExplanationScreen)(nil)

// New creates an ExplanationScreen for out.
func New(out game.Outcome) *ExplanationScreen {
	return &ExplanationScreen{
		outcome:  out,
		viewport: viewport.New(),
	}
}

func (e *ExplanationScreen) Init() tea.Cmd { return nil }

func (e *ExplanationScreen) Title() string {
	return fmt.Sprintf("How the AI saw it (%s)", e.outcome.Mode)
}

func (e *ExplanationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (e *ExplanationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return e, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	e.viewport, cmd = e.viewport.Update(msg)
	return e, cmd
}

func (e *ExplanationScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw != e.width {
		e.width = cw
		e.viewport.SetContent(Render(e.outcome, cw))
	}
	e.viewport.SetWidth(cw)
	e.viewport.SetHeight(height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, e.viewport.View())
}

// Render lays out the outcome as plain styled text at width cw.
func Render(out game.Outcome, cw int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	wrap := lipgloss.NewStyle().Width(cw)

	verdict := theme.Incorrect.Render("✗ Not solved yet")
	if out.Completed {
		verdict = theme.Correct.Render("✓ " + out.Title)
	}
	b.WriteString(verdict + "\n\n")

	b.WriteString(heading.Render("Your prompt") + "\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(out.StyledPrompt) + "\n\n")

	b.WriteString(heading.Render("Randomness") + "\n")
	b.WriteString(components.NewProgressBar(out.Meter.Label, float64(out.Meter.Fill)/100, true, cw).View() + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("Temperature %.1f", out.Temperature)) + "\n\n")

	for _, f := range out.Fragments {
		title := lipgloss.NewStyle().
			Foreground(theme.CategoryColor(f.Category)).
			Bold(true).
			Render(f.Category.Icon() + " " + f.Category.DisplayName())
		b.WriteString(title + "\n")
		b.WriteString(wrap.Foreground(theme.Text).Render(f.Text) + "\n\n")
	}

	if len(out.Comparison) > 0 {
		b.WriteString(heading.Render(history.ComparisonTitle) + "\n")
		for _, c := range out.Comparison {
			b.WriteString(wrap.Foreground(theme.TextDim).Render("• "+c) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
