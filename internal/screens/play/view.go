package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 12)
	s.creativity.Width = cw
	s.styleWeight.Width = cw

	var sections []string
	if s.notice != "" {
		sections = append(sections, components.Banner(s.notice, cw))
	}
	sections = append(sections, s.renderLevel(cw), s.renderControls(cw))
	if result := s.renderResult(cw); result != "" {
		sections = append(sections, result)
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// renderLevel renders the level heading and problem statement.
func (s *PlayScreen) renderLevel(cw int) string {
	l := s.level
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Level %d: %s", l.ID, l.EducationalFocus))
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(string(l.Difficulty))
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)

	problem := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Render(l.Problem)

	return left + strings.Repeat(" ", gap) + right + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)) + "\n" +
		problem
}

// renderControls renders the prompt entry and, once unlocked, the sliders.
func (s *PlayScreen) renderControls(cw int) string {
	var lines []string
	if s.guided {
		lines = append(lines,
			s.core.View(),
			s.tool.View(),
			s.action.View(),
			theme.Hint.Render("Prompt: "+s.Prompt()),
		)
	} else {
		label := theme.Unselected.Render("Prompt  ")
		if s.focus == fieldPrompt {
			label = theme.Selected.Render("Prompt  ")
		}
		lines = append(lines, label+s.input.View())
	}

	if s.showParameters() {
		lines = append(lines, "", s.creativity.View())
		if len(s.level.AvailableStyles) > 0 {
			lines = append(lines, s.style.View(), s.styleWeight.View())
		}
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

// renderResult renders the spinner, an error, or the last verdict.
func (s *PlayScreen) renderResult(cw int) string {
	if s.submitting {
		return s.spinner.View() + " " + theme.Hint.Render("Creating your image...")
	}

	var lines []string
	if s.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	if s.outcome == nil {
		return strings.Join(lines, "\n")
	}

	out := s.outcome
	if out.Completed {
		lines = append(lines, theme.Correct.Render("✓ "+out.Title))
	} else {
		lines = append(lines, theme.Incorrect.Render("✗ Not quite!"))
		if out.Parameters.Message != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render(out.Parameters.Message))
		}
		if out.Hint != "" {
			lines = append(lines, theme.Hint.Width(cw).Render("💡 "+out.Hint))
		}
	}

	lines = append(lines, renderMeter(out.Meter, out.Temperature))
	if len(out.Fragments) > 0 {
		first := out.Fragments[0]
		preview := first.Category.Icon() + " " + firstLine(first.Text)
		lines = append(lines,
			lipgloss.NewStyle().Width(cw).MaxHeight(2).Foreground(theme.CategoryColor(first.Category)).Render(preview),
			theme.Hint.Render(fmt.Sprintf("%d insights (%s mode), press Ctrl+E to read them", len(out.Fragments), out.Mode)),
		)
	}
	return strings.Join(lines, "\n")
}

func renderMeter(m explain.Meter, temperature float64) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Randomness: %s (%d%%)  Temperature: %.1f", m.Label, m.Fill, temperature))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
