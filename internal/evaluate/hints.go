package evaluate

import (
	"fmt"
	"strings"

	"github.com/abhisek/promptlab/internal/levels"
)

const fallbackHint = "Try a different approach! Think creatively about how to solve this challenge."

// Picker chooses a random index in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Picker interface {
	IntN(n int) int
}

// Hints returns every applicable hint for a failed attempt, most important
// first: missing keywords, then unmet parameters, then a random level hint.
func Hints(a Attempt, l levels.Level, rng Picker) []string {
	var hints []string

	if len(MatchKeywords(a.Prompt, l.SolutionKeywords)) == 0 && len(l.SolutionKeywords) > 0 {
		suggested := l.SolutionKeywords[:min(2, len(l.SolutionKeywords))]
		hints = append(hints, `💡 Try including words like "`+strings.Join(suggested, `" or "`)+`" in your prompt`)
	}

	if l.UnlockParameters {
		if !meetsCreativity(a, l) {
			hints = append(hints, fmt.Sprintf("🎨 Increase creativity to at least %d%% for this challenge", percent(*l.RequiredCreativity)))
		}
		if !meetsStyleWeight(a, l) {
			hints = append(hints, fmt.Sprintf("🎭 Increase style weight to at least %d%% and select a style", percent(*l.RequiredStyleWeight)))
		}
		if len(l.AvailableStyles) > 0 && a.Style == "" {
			hints = append(hints, "🎨 Select an art style from the dropdown: "+strings.Join(l.AvailableStyles, ", "))
		}
	}

	if len(l.Hints) > 0 {
		hints = append(hints, "💭 Hint: "+l.Hints[rng.IntN(len(l.Hints))])
	}

	return hints
}

// IntelligentHint returns the single most relevant hint for a failed
// attempt.
func IntelligentHint(a Attempt, l levels.Level, rng Picker) string {
	if h := Hints(a, l, rng); len(h) > 0 {
		return h[0]
	}
	return fallbackHint
}

// FailureHint returns a random level hint, or a generic nudge when the
// level has none.
func FailureHint(l levels.Level, rng Picker) string {
	if len(l.Hints) == 0 {
		return "Try other prompts!"
	}
	return "💡 Hint: " + l.Hints[rng.IntN(len(l.Hints))]
}
