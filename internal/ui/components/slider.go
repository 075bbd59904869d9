package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/ui/theme"
)

const (
	sliderStep      = 5
	sliderLargeStep = 20
)

// Slider is a 0-100 parameter control such as creativity or style weight.
// An optional target marks the threshold the current level asks for.
type Slider struct {
	Label   string
	Value   int
	Target  *int
	Focused bool
	Width   int
}

// NewSlider creates a slider at value.
func NewSlider(label string, value, width int) Slider {
	return Slider{Label: label, Value: clampPercent(value), Width: width}
}

// Update moves the value with left/right (or h/l); shift moves further.
// Keys are ignored while the slider is not focused.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Value = clampPercent(s.Value - sliderStep)
	case "right", "l":
		s.Value = clampPercent(s.Value + sliderStep)
	case "shift+left", "H":
		s.Value = clampPercent(s.Value - sliderLargeStep)
	case "shift+right", "L":
		s.Value = clampPercent(s.Value + sliderLargeStep)
	case "home":
		s.Value = 0
	case "end":
		s.Value = 100
	}
	return s, nil
}

// Met reports whether the value reaches the target. Without a target
// every value qualifies.
func (s Slider) Met() bool {
	return s.Target == nil || s.Value >= *s.Target
}

// View renders the label, the track with its target marker and the value.
func (s Slider) View() string {
	labelStyle := theme.Unselected
	if s.Focused {
		labelStyle = theme.Selected
	}
	label := labelStyle.Render(fmt.Sprintf("%-12s", s.Label))

	valueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Target != nil {
		if s.Met() {
			valueStyle = lipgloss.NewStyle().Foreground(theme.Success)
		} else {
			valueStyle = lipgloss.NewStyle().Foreground(theme.Warning)
		}
	}
	value := valueStyle.Render(fmt.Sprintf(" %3d%%", s.Value))

	trackWidth := max(s.Width-lipgloss.Width(label)-lipgloss.Width(value)-1, 4)
	filled := fillCells(trackWidth, float64(s.Value)/100)
	marker := -1
	if s.Target != nil {
		marker = min(fillCells(trackWidth, float64(*s.Target)/100), trackWidth-1)
	}

	var track strings.Builder
	for i := range trackWidth {
		switch {
		case i == marker:
			track.WriteString(theme.TargetMarker.Render("┃"))
		case i < filled:
			track.WriteString(theme.ProgressFilled.Render(" "))
		default:
			track.WriteString(theme.ProgressEmpty.Render(" "))
		}
	}

	return label + " " + track.String() + value
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
