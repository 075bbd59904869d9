package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/ui/components"
	"github.com/abhisek/promptlab/internal/ui/theme"
)

const arcadeTitleFull = ` ___ ___  ___  __  __ ___ _____ _      _   ___
| _ \ _ \/ _ \|  \/  | _ \_   _| |    /_\ | _ )
|  _/   / (_) | |\/| |  _/ | | | |__ / _ \| _ \
|_| |_|_\\___/|_|  |_|_|   |_| |____/_/ \_\___/`

const arcadeTitleCompact = "P · R · O · M · P · T · L · A · B"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// dashboard is the state summarized in the stats bar.
type dashboard struct {
	solved   int
	total    int
	unlocked bool
	mode     string
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	solvedStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	paramStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	modeStyle := lipgloss.NewStyle().Foreground(theme.ArcadePink).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	params := dimStyle
	paramText, paramShort := "🎛 PARAMS LOCKED", "🎛✗"
	if d.unlocked {
		params = paramStyle
		paramText, paramShort = "🎛 PARAMS ON", "🎛✓"
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			solvedStyle.Render(fmt.Sprintf("★%d/%d", d.solved, d.total)),
			params.Render(paramShort),
			modeStyle.Render(d.mode),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			solvedStyle.Render(fmt.Sprintf("★ %d/%d SOLVED", d.solved, d.total)),
			params.Render(paramText),
			modeStyle.Render("🔮 "+strings.ToUpper(d.mode)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner notes that oracle explanations need an LLM API key.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Oracle mode needs an LLM API key (see promptlab --help)")
}

func renderError(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
