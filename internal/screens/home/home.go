package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/router"
	"github.com/abhisek/promptlab/internal/screen"
	"github.com/abhisek/promptlab/internal/screens/history"
	"github.com/abhisek/promptlab/internal/screens/levelselect"
	"github.com/abhisek/promptlab/internal/screens/play"
	"github.com/abhisek/promptlab/internal/screens/stats"
	"github.com/abhisek/promptlab/internal/store"
	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/layout"
)

const (
	itemPlay = iota
	itemLevels
	itemHistory
	itemStats
	itemMode
	itemReset
	itemExit
)

const (
	resetLabel   = "RESET"
	confirmLabel = "RESET? ENTER AGAIN"
)

// modeCycle is the order the MODE item steps through.
var modeCycle = []string{game.ModeAuto, string(explain.ModeBasic), string(explain.ModeAnalytical), string(explain.ModeOracle)}

// HomeScreen is the main menu.
type HomeScreen struct {
	session      *game.Session
	eventRepo    store.EventRepo
	llmEnabled   bool
	menu         components.Menu
	confirmReset bool
	errMsg       string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. eventRepo may be nil. llmEnabled reports
// whether an LLM provider is configured for oracle explanations.
func New(session *game.Session, eventRepo store.EventRepo, llmEnabled bool) *HomeScreen {
	h := &HomeScreen{
		session:    session,
		eventRepo:  eventRepo,
		llmEnabled: llmEnabled,
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemPlay] = components.MenuItem{Label: "PLAY", Action: func() tea.Cmd {
		return push(play.New(h.session, ""))
	}}
	items[itemLevels] = components.MenuItem{Label: "LEVELS", Action: func() tea.Cmd {
		return push(levelselect.New(h.session.Catalog(), h.session.Progress(), h.playLevel))
	}}
	items[itemHistory] = components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
		return push(history.New(h.session.History(), h.eventRepo))
	}}
	items[itemStats] = components.MenuItem{Label: "STATS", Action: func() tea.Cmd {
		return push(stats.New(h.session.Catalog(), h.eventRepo))
	}}
	items[itemMode] = components.MenuItem{Action: h.cycleMode}
	items[itemReset] = components.MenuItem{Action: h.reset}
	items[itemExit] = components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}}

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// playLevel points the session at levelID and returns its play screen, or
// nil when the level cannot be entered.
func (h *HomeScreen) playLevel(levelID int) screen.Screen {
	notice, err := h.session.SetLevel(levelID)
	if err != nil {
		return nil
	}
	return play.New(h.session, notice)
}

func (h *HomeScreen) cycleMode() tea.Cmd {
	current := h.session.Mode()
	next := modeCycle[0]
	for i, m := range modeCycle {
		if m == current {
			next = modeCycle[(i+1)%len(modeCycle)]
			break
		}
	}
	if err := h.session.SetMode(context.Background(), next); err != nil {
		h.errMsg = err.Error()
	}
	h.refresh()
	return nil
}

func (h *HomeScreen) reset() tea.Cmd {
	if !h.confirmReset {
		h.confirmReset = true
		h.refresh()
		return nil
	}
	h.confirmReset = false
	if err := h.session.Reset(context.Background()); err != nil {
		h.errMsg = err.Error()
	}
	h.refresh()
	return nil
}

// refresh recomputes labels that show live state.
func (h *HomeScreen) refresh() {
	h.menu.Items[itemMode].Label = "MODE: " + strings.ToUpper(h.session.Mode())
	if h.confirmReset {
		h.menu.Items[itemReset].Label = confirmLabel
	} else {
		h.menu.Items[itemReset].Label = resetLabel
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the dashboard after a pushed screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.confirmReset = false
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		h.errMsg = ""
		if h.confirmReset && !(k.String() == "enter" && h.menu.Selected == itemReset) {
			h.confirmReset = false
			h.refresh()
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	tracker := h.session.Progress()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}
	sections = append(sections, renderStatsBar(dashboard{
		solved:   tracker.CompletedCount(),
		total:    tracker.Total(),
		unlocked: h.session.ParametersUnlocked(),
		mode:     h.session.Mode(),
	}, cw, compact))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	if !h.llmEnabled {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(fmt.Sprintf("Error: %s", h.errMsg), cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	switch {
	case h.session.Progress().AllComplete():
		return MascotCelebrating
	case h.session.Mode() == string(explain.ModeOracle) && !h.llmEnabled:
		return MascotAlert
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
