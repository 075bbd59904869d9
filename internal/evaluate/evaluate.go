package evaluate

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/promptlab/internal/levels"
)

// Result is the outcome of checking an attempt against a level.
type Result struct {
	Passed          bool     `json:"passed"`
	MatchedKeywords []string `json:"matched_keywords"`
	HasKeywordMatch bool     `json:"has_keyword_match"`
}

// MatchKeywords returns the keywords whose lower-cased form occurs in the
// lower-cased prompt, in keyword order.
func MatchKeywords(prompt string, keywords []string) []string {
	lp := strings.ToLower(prompt)
	matched := []string{}
	for _, k := range keywords {
		if lp != "" && strings.Contains(lp, strings.ToLower(k)) {
			matched = append(matched, k)
		}
	}
	return matched
}

// CheckWinCondition evaluates a against l. Keyword matching always runs;
// parameter thresholds are only checked when the level unlocks parameters
// and at least one keyword matched. Thresholds are inclusive.
func CheckWinCondition(a Attempt, l levels.Level) Result {
	matched := MatchKeywords(a.Prompt, l.SolutionKeywords)
	passed := len(matched) > 0

	if passed && l.UnlockParameters {
		passed = meetsCreativity(a, l) && meetsStyleWeight(a, l)
	}

	return Result{
		Passed:          passed,
		MatchedKeywords: matched,
		HasKeywordMatch: len(matched) > 0,
	}
}

// ParameterCheck reports whether slider values satisfy a level, with a
// player-facing message when they don't.
type ParameterCheck struct {
	Passed  bool
	Message string
}

// CheckParameterRequirements checks only the slider thresholds. Creativity
// is reported before style weight.
func CheckParameterRequirements(a Attempt, l levels.Level) ParameterCheck {
	if !l.UnlockParameters {
		return ParameterCheck{Passed: true}
	}
	if !meetsCreativity(a, l) {
		return ParameterCheck{
			Message: fmt.Sprintf("Creativity level too low! Set it to %d%% or higher.", percent(*l.RequiredCreativity)),
		}
	}
	if !meetsStyleWeight(a, l) {
		return ParameterCheck{
			Message: fmt.Sprintf("Style weight too low! Set it to %d%% or higher.", percent(*l.RequiredStyleWeight)),
		}
	}
	return ParameterCheck{Passed: true}
}

func meetsCreativity(a Attempt, l levels.Level) bool {
	return l.RequiredCreativity == nil || a.CreativityNorm() >= *l.RequiredCreativity
}

func meetsStyleWeight(a Attempt, l levels.Level) bool {
	return l.RequiredStyleWeight == nil || a.StyleWeightNorm() >= *l.RequiredStyleWeight
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
