package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/ui/theme"
)

// Selector cycles through a fixed list of options with left and right.
// It is used for style presets and the guided prompt builder.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector on the first option.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// Update handles left/right cycling while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Options) == 0 {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
	}
	return s, nil
}

// Value returns the selected option, or "" when there are none.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Selected]
}

// Select moves to the option equal to v. It reports whether v was found.
func (s *Selector) Select(v string) bool {
	for i, opt := range s.Options {
		if opt == v {
			s.Selected = i
			return true
		}
	}
	return false
}

// View renders "Label  ◂ value ▸".
func (s Selector) View() string {
	labelStyle := theme.Unselected
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	arrows := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = theme.Selected
		valueStyle = valueStyle.Foreground(theme.ArcadeYellow).Bold(true)
		arrows = arrows.Foreground(theme.Primary)
	}

	value := s.Value()
	if value == "" {
		value = "none"
	}
	return labelStyle.Render(padRight(s.Label, 12)) + " " +
		arrows.Render("◂ ") + valueStyle.Render(value) + arrows.Render(" ▸")
}

func padRight(s string, n int) string {
	for lipgloss.Width(s) < n {
		s += " "
	}
	return s
}
