package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/ui/theme"
)

// MaxPromptLength bounds what a player can type into the prompt box.
const MaxPromptLength = 200

// PromptInput wraps bubbles/textinput with PromptLab styling.
type PromptInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewPromptInput creates a focused prompt input.
func NewPromptInput(placeholder string, width int) PromptInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = MaxPromptLength
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()
	return PromptInput{Model: ti}
}

// Init returns the initial command.
func (p PromptInput) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update handles messages. Editing after a verdict clears the verdict mark.
func (p PromptInput) Update(msg tea.Msg) (PromptInput, tea.Cmd) {
	before := p.Model.Value()
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	if p.Model.Value() != before {
		p.submitted = false
	}
	return p, cmd
}

// View renders the input with a verdict mark once submitted.
func (p PromptInput) View() string {
	view := p.Model.View()
	if p.submitted {
		if p.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (p PromptInput) Value() string {
	return p.Model.Value()
}

// SetValue replaces the input text.
func (p *PromptInput) SetValue(s string) {
	p.Model.SetValue(s)
	p.Model.CursorEnd()
	p.submitted = false
}

// SetWidth resizes the visible input.
func (p *PromptInput) SetWidth(w int) {
	p.Model.SetWidth(w)
}

// Focus gives the input keyboard focus.
func (p *PromptInput) Focus() tea.Cmd {
	return p.Model.Focus()
}

// Blur removes keyboard focus.
func (p *PromptInput) Blur() {
	p.Model.Blur()
}

// Focused reports whether the input has focus.
func (p PromptInput) Focused() bool {
	return p.Model.Focused()
}

// Reset clears the text and any verdict.
func (p *PromptInput) Reset() {
	p.Model.Reset()
	p.submitted = false
}

// Submit marks the input as submitted with a validation result.
func (p *PromptInput) Submit(valid bool) {
	p.submitted = true
	p.valid = valid
}
