package explain

import "strings"

// Mode selects an explanation strategy.
type Mode string

const (
	// ModeBasic looks up a canned sentence for the first matched keyword.
	ModeBasic Mode = "basic"
	// ModeAnalytical analyses the parameters in depth.
	ModeAnalytical Mode = "analytical"
	// ModeOracle asks a text-generation model to explain itself.
	ModeOracle Mode = "oracle"
)

var modeAliases = map[string]Mode{
	"basic":      ModeBasic,
	"prophet":    ModeBasic,
	"analytical": ModeAnalytical,
	"smart":      ModeAnalytical,
	"parameter":  ModeAnalytical,
	"oracle":     ModeOracle,
	"ai":         ModeOracle,
	"deferred":   ModeOracle,
	"remote":     ModeOracle,
}

// ParseMode resolves a mode name or alias. Unknown names resolve to
// ModeAnalytical with ok=false.
func ParseMode(s string) (Mode, bool) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ModeAnalytical, false
	}
	return m, true
}

// Modes lists the canonical modes.
func Modes() []Mode {
	return []Mode{ModeBasic, ModeAnalytical, ModeOracle}
}

const recommendedMaxLevel = 10

// RecommendedMode picks a strategy for a level: basic for the first five,
// analytical for parameter levels up to ten, oracle otherwise.
func RecommendedMode(levelID int, parametersUnlocked bool) Mode {
	switch {
	case levelID <= 5:
		return ModeBasic
	case levelID <= recommendedMaxLevel && parametersUnlocked:
		return ModeAnalytical
	default:
		return ModeOracle
	}
}
