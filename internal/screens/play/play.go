// Package play is the screen where a level is attempted: prompt entry,
// parameter sliders, guided mode and the verdict.
package play

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/screens/explanation"
	"github.com/abhisek/promptlab/internal/screens/notice"
	"github.com/abhisek/promptlab/internal/screens/summary"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

const promptPlaceholder = "Describe your solution..."

// field is one focusable control.
type field int

const (
	fieldPrompt field = iota
	fieldCore
	fieldTool
	fieldAction
	fieldCreativity
	fieldStyle
	fieldStyleWeight
)

// PlayScreen implements screen.Screen for one level attempt loop.
type PlayScreen struct {
	session *game.Session
	level   levels.Level
	notice  string

	input       components.PromptInput
	creativity  components.Slider
	styleWeight components.Slider
	style       components.Selector

	guided bool
	core   components.Selector
	tool   components.Selector
	action components.Selector

	focus      field
	spinner    spinner.Model
	submitting bool
	outcome    *game.Outcome
	errMsg     string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
)

// New creates a PlayScreen for the session's current level. notice is
// shown above the level, e.g. when the parameter panel was just unlocked.
func New(session *game.Session, notice string) *PlayScreen {
	s := &PlayScreen{
		session: session,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeCyan)),
		),
	}
	s.loadLevel(notice)
	return s
}

// loadLevel resets the controls for the session's current level.
func (s *PlayScreen) loadLevel(notice string) {
	s.level = s.session.Level()
	s.notice = notice
	s.outcome = nil
	s.errMsg = ""
	s.focus = fieldPrompt

	creativity, style, styleWeight := s.session.Sliders()
	s.input = components.NewPromptInput(promptPlaceholder, 50)
	s.creativity = components.NewSlider("Creativity", creativity, 50)
	s.creativity.Target = s.level.CreativityTarget()
	s.styleWeight = components.NewSlider("Style weight", styleWeight, 50)
	s.styleWeight.Target = s.level.StyleWeightTarget()
	s.style = components.NewSelector("Style", append([]string{""}, s.level.AvailableStyles...))
	s.style.Select(style)

	s.core = components.NewSelector("Subject", optionTexts(s.level.SafeMode.CoreElements))
	s.tool = components.NewSelector("Tool", optionTexts(s.level.SafeMode.SolutionTools))
	s.action = components.NewSelector("Action", optionTexts(s.level.SafeMode.ActionMethods))
	if s.guided && !s.hasGuidedOptions() {
		s.guided = false
	}
	s.applyFocus()
}

func (s *PlayScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PlayScreen) Title() string {
	return "Play"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.submitting {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Create"},
		{Key: "Tab", Description: "Next field"},
	}
	if s.hasGuidedOptions() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Guided"})
	}
	if s.outcome != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return s.handleSubmitDone(msg)

	case advanceMsg:
		return s.handleAdvance()

	case spinner.TickMsg:
		if !s.submitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldPrompt {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "enter":
		return s, s.submit()
	case "tab", "down":
		s.cycleFocus(1)
		return s, nil
	case "shift+tab", "up":
		s.cycleFocus(-1)
		return s, nil
	case "ctrl+g":
		if s.hasGuidedOptions() {
			s.guided = !s.guided
			s.focus = s.fields()[0]
			s.applyFocus()
		}
		return s, nil
	case "ctrl+e":
		if s.outcome == nil {
			return s, nil
		}
		ex := explanation.New(*s.outcome)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: ex} }
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldPrompt:
		s.input, cmd = s.input.Update(msg)
	case fieldCore:
		s.core, cmd = s.core.Update(msg)
	case fieldTool:
		s.tool, cmd = s.tool.Update(msg)
	case fieldAction:
		s.action, cmd = s.action.Update(msg)
	case fieldCreativity:
		s.creativity, cmd = s.creativity.Update(msg)
		s.session.SetCreativity(s.creativity.Value)
	case fieldStyleWeight:
		s.styleWeight, cmd = s.styleWeight.Update(msg)
		s.session.SetStyleWeight(s.styleWeight.Value)
	case fieldStyle:
		s.style, cmd = s.style.Update(msg)
		if err := s.session.SetStyle(s.style.Value()); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, cmd
}

// submit starts an asynchronous submission of the current prompt.
func (s *PlayScreen) submit() tea.Cmd {
	prompt := s.Prompt()
	if prompt == "" {
		s.errMsg = "Please enter a prompt first!"
		return nil
	}
	s.errMsg = ""
	s.notice = ""
	s.submitting = true
	return tea.Batch(
		s.submitCmd(prompt),
		func() tea.Msg { return s.spinner.Tick() },
	)
}

func (s *PlayScreen) submitCmd(prompt string) tea.Cmd {
	session := s.session
	return func() tea.Msg {
		out, err := session.Submit(context.Background(), prompt)
		return submitDoneMsg{Outcome: out, Err: err}
	}
}

func (s *PlayScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil && msg.Outcome.Level.ID == 0 {
		s.errMsg = errorText(msg.Err)
		return s, nil
	}
	if msg.Err != nil {
		// The verdict stands even when progress could not be saved.
		s.errMsg = "Progress could not be saved: " + msg.Err.Error()
	}

	out := msg.Outcome
	s.outcome = &out
	s.input.Submit(out.Completed)
	if !out.Completed {
		return s, nil
	}

	title, message := out.Title, out.Message
	if out.GameComplete && s.session.Catalog().IsFinal(out.Level.ID) {
		message += "\n\n" + game.GameCompleteBanner
	}
	n := notice.New(title, message, func() tea.Msg { return advanceMsg{} })
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: n} }
}

func (s *PlayScreen) handleAdvance() (screen.Screen, tea.Cmd) {
	unlockNotice, err := s.session.Advance()
	if errors.Is(err, game.ErrGameComplete) {
		sum := summary.New(s.session)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.loadLevel(unlockNotice)
	return s, s.input.Focus()
}

// Prompt returns the text that would be submitted: the typed prompt, or
// the composed guided prompt.
func (s *PlayScreen) Prompt() string {
	if !s.guided {
		return s.input.Value()
	}
	return s.session.ComposeSafePrompt(
		optionValue(s.level.SafeMode.CoreElements, s.core.Selected),
		optionValue(s.level.SafeMode.SolutionTools, s.tool.Selected),
		optionValue(s.level.SafeMode.ActionMethods, s.action.Selected),
	)
}

// fields lists the focusable controls in tab order.
func (s *PlayScreen) fields() []field {
	var fs []field
	if s.guided {
		fs = append(fs, fieldCore, fieldTool, fieldAction)
	} else {
		fs = append(fs, fieldPrompt)
	}
	if s.showParameters() {
		fs = append(fs, fieldCreativity)
		if len(s.level.AvailableStyles) > 0 {
			fs = append(fs, fieldStyle, fieldStyleWeight)
		}
	}
	return fs
}

func (s *PlayScreen) showParameters() bool {
	return s.session.ParametersUnlocked()
}

func (s *PlayScreen) hasGuidedOptions() bool {
	sm := s.level.SafeMode
	return len(sm.CoreElements)+len(sm.SolutionTools)+len(sm.ActionMethods) > 0
}

func (s *PlayScreen) cycleFocus(delta int) {
	fs := s.fields()
	idx := 0
	for i, f := range fs {
		if f == s.focus {
			idx = i
		}
	}
	s.focus = fs[(idx+delta+len(fs))%len(fs)]
	s.applyFocus()
}

func (s *PlayScreen) applyFocus() {
	if s.focus == fieldPrompt {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
	s.core.Focused = s.focus == fieldCore
	s.tool.Focused = s.focus == fieldTool
	s.action.Focused = s.focus == fieldAction
	s.creativity.Focused = s.focus == fieldCreativity
	s.style.Focused = s.focus == fieldStyle
	s.styleWeight.Focused = s.focus == fieldStyleWeight
}

func errorText(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyPrompt):
		return "Please enter a prompt first!"
	default:
		return err.Error()
	}
}

func optionTexts(opts []levels.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Text
	}
	return out
}

func optionValue(opts []levels.Option, i int) string {
	if i < 0 || i >= len(opts) {
		return ""
	}
	return opts[i].Value
}
