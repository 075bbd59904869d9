package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptlab/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗  ██████╗ ███╗   ███╗██████╗ ████████╗██╗      █████╗ ██████╗
 ██╔══██╗██╔══██╗██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝██║     ██╔══██╗██╔══██╗
 ██████╔╝██████╔╝██║   ██║██╔████╔██║██████╔╝   ██║   ██║     ███████║██████╔╝
 ██╔═══╝ ██╔══██╗██║   ██║██║╚██╔╝██║██╔═══╝    ██║   ██║     ██╔══██║██╔══██╗
 ██║     ██║  ██║╚██████╔╝██║ ╚═╝ ██║██║        ██║   ███████╗██║  ██║██████╔╝
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝        ╚═╝   ╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "P R O M P T L A B"

// bannerMinWidth is the narrowest terminal the block banner fits in.
const bannerMinWidth = 80

// RenderBanner returns the PROMPTLAB banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
