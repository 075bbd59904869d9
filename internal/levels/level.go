package levels

import "math"

// Difficulty groups levels for display.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level is one puzzle in the catalog. Levels are immutable once loaded.
type Level struct {
	ID               int        `yaml:"id"`
	Problem          string     `yaml:"problem"`
	EducationalFocus string     `yaml:"educational_focus"`
	Why              string     `yaml:"why"`
	Difficulty       Difficulty `yaml:"difficulty"`

	// UnlockParameters enables the creativity and style sliders. When false
	// the parameter thresholds are never consulted.
	UnlockParameters    bool     `yaml:"unlock_parameters"`
	RequiredCreativity  *float64 `yaml:"required_creativity,omitempty"`
	RequiredStyleWeight *float64 `yaml:"required_style_weight,omitempty"`
	AvailableStyles     []string `yaml:"available_styles,omitempty"`

	SolutionKeywords []string `yaml:"solution_keywords"`
	Hints            []string `yaml:"hints,omitempty"`

	// AILimitationDemo marks the level used to demonstrate hallucination.
	AILimitationDemo bool `yaml:"ai_limitation_demo,omitempty"`

	SafeMode SafeModeOptions `yaml:"safe_mode"`
}

// SafeModeOptions is the fixed vocabulary offered when free-text prompts
// are disabled.
type SafeModeOptions struct {
	CoreElements  []Option `yaml:"core_elements"`
	SolutionTools []Option `yaml:"solution_tools"`
	ActionMethods []Option `yaml:"action_methods"`
}

// Option is a single safe-mode choice: a display label and the text it
// contributes to the composed prompt.
type Option struct {
	Text  string `yaml:"text"`
	Value string `yaml:"value"`
}

const maxTitleLen = 35

// Title returns the problem text shortened for list views.
func (l Level) Title() string {
	r := []rune(l.Problem)
	if len(r) > maxTitleLen {
		return string(r[:maxTitleLen-3]) + "..."
	}
	return l.Problem
}

// CreativityTarget returns the creativity threshold as a 0-100 percentage,
// or nil when the level has none.
func (l Level) CreativityTarget() *int { return percent(l.RequiredCreativity) }

// StyleWeightTarget returns the style weight threshold as a 0-100
// percentage, or nil when the level has none.
func (l Level) StyleWeightTarget() *int { return percent(l.RequiredStyleWeight) }

func percent(v *float64) *int {
	if v == nil {
		return nil
	}
	p := int(math.Round(*v * 100))
	return &p
}

// HasStyle reports whether style is one of the level's available styles.
func (l Level) HasStyle(style string) bool {
	for _, s := range l.AvailableStyles {
		if s == style {
			return true
		}
	}
	return false
}

// ComposeSafePrompt builds a prompt from safe-mode selections. Any argument
// may be empty; an action without a tool contributes nothing.
func ComposeSafePrompt(core, tool, action string) string {
	switch {
	case action != "" && tool != "":
		p := action + " " + tool
		if core != "" {
			p += " to help the " + core
		}
		return p
	case tool != "":
		if core != "" {
			return tool + " for the " + core
		}
		return tool
	case core != "":
		return core
	}
	return ""
}
