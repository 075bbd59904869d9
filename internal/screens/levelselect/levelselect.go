// Package levelselect lists the catalog grouped by difficulty.
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

// Heading shown above the level list.
const Heading = "Choose your level - Start your AI learning journey!"

// PlayFunc builds the play screen for a level. It returns nil when the
// level cannot be started.
type PlayFunc func(levelID int) screen.Screen

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowLevel
)

type row struct {
	kind       rowKind
	difficulty levels.Difficulty
	level      *levels.Level
}

// LevelSelectScreen displays every level with its lock state.
type LevelSelectScreen struct {
	rows         []row
	cursor       int
	scrollOffset int
	progress     *progress.Tracker
	play         PlayFunc
}

var (
	_ screen.Screen          = (*LevelSelectScreen)(nil)
	_ screen.KeyHintProvider = (*LevelSelectScreen)(nil)
)

var difficultyOrder = []levels.Difficulty{
	levels.DifficultyBeginner,
	levels.DifficultyIntermediate,
	levels.DifficultyAdvanced,
}

// New creates a LevelSelectScreen. The cursor starts on the highest
// unlocked level.
func New(catalog *levels.Catalog, tracker *progress.Tracker, play PlayFunc) *LevelSelectScreen {
	all := catalog.All()
	var rows []row
	for _, d := range difficultyOrder {
		first := true
		for i := range all {
			if all[i].Difficulty != d {
				continue
			}
			if first {
				rows = append(rows, row{kind: rowGroupHeader, difficulty: d})
				first = false
			}
			rows = append(rows, row{kind: rowLevel, difficulty: d, level: &all[i]})
		}
	}

	s := &LevelSelectScreen{rows: rows, progress: tracker, play: play}
	s.cursor = s.rowFor(tracker.HighestUnlocked())
	return s
}

func (s *LevelSelectScreen) rowFor(levelID int) int {
	first := -1
	for i, r := range s.rows {
		if r.kind != rowLevel {
			continue
		}
		if first < 0 {
			first = i
		}
		if r.level.ID == levelID {
			return i
		}
	}
	return max(first, 0)
}

func (s *LevelSelectScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextGroup()
		case "d":
			return s, s.showDetail()
		case "enter":
			return s, s.selectLevel()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *LevelSelectScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	heading := theme.Title.Width(width).Render(Heading)
	listHeight := max(height-2, 1)
	s.adjustScroll(listHeight)

	lines := []string{heading, ""}
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= listHeight {
			break
		}
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, renderGroupHeader(r.difficulty, width))
		case rowLevel:
			lines = append(lines, s.renderLevelRow(r, i == s.cursor, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

func (s *LevelSelectScreen) Title() string {
	return "Levels"
}

// KeyHints returns the key binding hints for the footer.
func (s *LevelSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "d", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the level under the cursor.
func (s *LevelSelectScreen) Selected() (levels.Level, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].level == nil {
		return levels.Level{}, false
	}
	return *s.rows[s.cursor].level, true
}

// moveCursor moves the cursor by delta, skipping group headers.
func (s *LevelSelectScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowLevel {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextGroup jumps to the first level of the next difficulty, wrapping.
func (s *LevelSelectScreen) nextGroup() {
	current := s.rows[s.cursor].difficulty
	for i := 1; i < len(s.rows); i++ {
		j := (s.cursor + i) % len(s.rows)
		if s.rows[j].kind == rowLevel && s.rows[j].difficulty != current {
			s.cursor = j
			return
		}
	}
}

// adjustScroll keeps the cursor and its group header visible.
func (s *LevelSelectScreen) adjustScroll(height int) {
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowGroupHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectLevel starts the level under the cursor when it is playable.
func (s *LevelSelectScreen) selectLevel() tea.Cmd {
	l, ok := s.Selected()
	if !ok || !s.progress.IsPlayable(l.ID) || s.play == nil {
		return nil
	}
	next := s.play(l.ID)
	if next == nil {
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *LevelSelectScreen) showDetail() tea.Cmd {
	l, ok := s.Selected()
	if !ok {
		return nil
	}
	detail := newLevelDetail(l, s.progress, s.play)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderGroupHeader(d levels.Difficulty, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(string(d)))
}

func (s *LevelSelectScreen) renderLevelRow(r row, selected bool, width int) string {
	status := s.progress.Status(r.level.ID)

	nameWidth := max(width-4-3-10-12-4, 10)
	name := fmt.Sprintf("Level %d: %s", r.level.ID, r.level.Title())
	if lipgloss.Width(name) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	var nameStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case status == progress.StatusCompleted:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Success)
	case status == progress.StatusUnlocked:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	params := "          "
	if r.level.UnlockParameters {
		params = lipgloss.NewStyle().Foreground(theme.ArcadePink).Render("🎛 sliders")
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		status.Icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		params,
		labelStyle.Render(fmt.Sprintf("%10s", status.String())),
	)
}
