// Package explain turns an attempt into human-readable fragments that
// explain why a generated image looks the way it does.
package explain

import (
	"context"

	"github.com/abhisek/promptlab/internal/evaluate"
	"github.com/abhisek/promptlab/internal/levels"
)

// Input is everything a strategy needs to explain one attempt.
type Input struct {
	Prompt          string
	Creativity      int
	Style           string
	StyleWeight     int
	MatchedKeywords []string
	LevelID         int

	// LimitationDemo forces the AI-limitation literacy message.
	LimitationDemo bool
}

// NewInput assembles an Input from an evaluated attempt.
func NewInput(a evaluate.Attempt, l levels.Level, r evaluate.Result) Input {
	return Input{
		Prompt:          a.Prompt,
		Creativity:      a.Creativity,
		Style:           a.Style,
		StyleWeight:     a.StyleWeight,
		MatchedKeywords: r.MatchedKeywords,
		LevelID:         l.ID,
		LimitationDemo:  l.AILimitationDemo,
	}
}

// Strategy produces explanation fragments for an attempt.
type Strategy interface {
	Mode() Mode
	Explain(ctx context.Context, in Input) ([]Fragment, error)
}
