// Package screen defines the contract every TUI screen implements.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptlab/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that show state another screen can
// change, such as progress. Resume runs when the screen becomes active
// again after the screen above it is popped.
type Resumer interface {
	Resume() tea.Cmd
}
