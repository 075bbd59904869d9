// Package evaluate decides whether a prompt attempt solves a level and
// produces the hints shown after a miss.
package evaluate

import "strings"

const (
	MinParam = 0
	MaxParam = 100
)

// Attempt is one submission: prompt text plus the two slider values.
// Slider values are integers in [0,100].
type Attempt struct {
	Prompt      string
	Creativity  int
	Style       string
	StyleWeight int
}

// NewAttempt builds an Attempt, clamping both sliders into [0,100].
func NewAttempt(prompt string, creativity int, style string, styleWeight int) Attempt {
	return Attempt{
		Prompt:      prompt,
		Creativity:  clamp(creativity),
		Style:       strings.TrimSpace(style),
		StyleWeight: clamp(styleWeight),
	}
}

// CreativityNorm returns creativity scaled to [0,1].
func (a Attempt) CreativityNorm() float64 {
	return float64(a.Creativity) / 100
}

// StyleWeightNorm returns style weight scaled to [0,1].
func (a Attempt) StyleWeightNorm() float64 {
	return float64(a.StyleWeight) / 100
}

func clamp(v int) int {
	return max(MinParam, min(MaxParam, v))
}
