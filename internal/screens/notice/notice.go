// Package notice shows a one-off message such as a level completion.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/layout"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

// NoticeScreen is a centered card with a title and message. Enter closes
// it and then runs the continue command against the screen below.
type NoticeScreen struct {
	title      string
	message    string
	onContinue tea.Cmd
	closed     bool
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a NoticeScreen. onContinue may be nil.
func New(title, message string, onContinue tea.Cmd) *NoticeScreen {
	return &NoticeScreen{title: title, message: message, onContinue: onContinue}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || n.closed {
		return n, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		n.closed = true
		pop := func() tea.Msg { return router.PopScreenMsg{} }
		if n.onContinue == nil {
			return n, pop
		}
		return n, tea.Sequence(pop, n.onContinue)
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(n.title)
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(n.message)
	hint := theme.Hint.Render("press enter to continue")

	card := components.ArcadeCard(title+"\n\n"+body+"\n\n"+hint, cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
}
