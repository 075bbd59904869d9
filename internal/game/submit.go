package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/promptlab/internal/evaluate"
	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/store"
)

// Player-facing completion texts.
const (
	LevelCompleteTitle       = "🎉 Level Complete!"
	levelCompleteText        = "You have mastered %s!"
	FinalCompleteTitle       = "🏆 Congratulations!"
	FinalCompleteText        = "You have mastered the art of AI parameter control!"
	GameCompleteBanner       = "🎊 Congratulations on completing all levels! You have mastered PromptLab!"
	GameCompleteNotice       = "🏆 Game Complete! You have mastered all AI parameter control techniques!"
	ParametersUnlockedNotice = "🎉 Parameter control panel unlocked! Now you can control AI creativity and style!"
)

// Outcome is everything the player sees after one submission.
type Outcome struct {
	Level     levels.Level
	Attempt   evaluate.Attempt
	Result    evaluate.Result
	Mode      explain.Mode
	Fragments []explain.Fragment

	// Hint is set when the attempt failed.
	Hint string
	// Parameters is the slider check; Parameters.Message explains a miss
	// when the keywords matched but the sliders did not.
	Parameters evaluate.ParameterCheck

	StyledPrompt string
	Temperature  float64
	Meter        explain.Meter
	Comparison   []string

	// Completed is set when the attempt solved the level.
	Completed bool
	// Unlocked is set when solving it opened a new level.
	Unlocked bool
	// GameComplete is set when every level is now solved.
	GameComplete bool

	Title   string
	Message string
}

// Submit evaluates prompt against the current level with the current
// sliders, explains it, and on success advances progress. Storage failures
// while recording the attempt are logged, never returned; a failure to save
// progress is returned alongside the outcome.
func (s *Session) Submit(ctx context.Context, prompt string) (Outcome, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Outcome{}, ErrEmptyPrompt
	}

	s.mu.Lock()
	l := s.level
	a := evaluate.NewAttempt(prompt, s.creativity, s.style, s.styleWeight)
	mode := s.effectiveModeLocked()
	s.mu.Unlock()

	if l.ID == 0 {
		return Outcome{}, ErrUnknownLevel
	}

	result := evaluate.CheckWinCondition(a, l)
	out := Outcome{
		Level:        l,
		Attempt:      a,
		Result:       result,
		Mode:         mode,
		Parameters:   evaluate.CheckParameterRequirements(a, l),
		StyledPrompt: evaluate.StyledPrompt(a.Prompt, a.Style, a.StyleWeight),
		Temperature:  evaluate.Temperature(a.Creativity),
		Meter:        explain.RandomnessMeter(a.Creativity),
		Completed:    result.Passed,
	}
	out.Fragments = s.engine.Generate(ctx, explain.NewInput(a, l, result), mode)

	s.progress.RecordAttempt(l.ID)
	s.history.Add(a.Prompt, a.Creativity, a.Style, a.StyleWeight, resultLabel(result))
	out.Comparison = s.history.Compare()
	s.record(ctx, a, l, result, mode)

	if !result.Passed {
		out.Hint = evaluate.IntelligentHint(a, l, s.engine.Rand())
		return out, nil
	}

	unlocked, err := s.progress.Complete(ctx, l.ID)
	out.Unlocked = unlocked
	out.GameComplete = s.progress.AllComplete()
	out.Title, out.Message = completionText(s.catalog, l)
	if err != nil {
		return out, fmt.Errorf("complete level %d: %w", l.ID, err)
	}
	return out, nil
}

// Advance moves to the next level after a success. It returns
// ErrGameComplete after the final level.
func (s *Session) Advance() (string, error) {
	s.mu.Lock()
	id := s.level.ID
	s.mu.Unlock()

	next, ok := s.catalog.Next(id)
	if !ok {
		return "", ErrGameComplete
	}
	return s.SetLevel(next.ID)
}

// Reset forgets all progress and history and returns to level 1.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.progress.Reset(ctx); err != nil {
		return err
	}
	s.history.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ""
	s.paramsUnlocked = false
	s.creativity = DefaultCreativity
	s.styleWeight = DefaultStyleWeight
	if l, ok := s.catalog.Get(1); ok {
		s.enterLocked(l)
	}
	return nil
}

func (s *Session) record(ctx context.Context, a evaluate.Attempt, l levels.Level, r evaluate.Result, mode explain.Mode) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAttempt(context.WithoutCancel(ctx), store.AttemptEventData{
		SessionID:       s.id,
		LevelID:         l.ID,
		Prompt:          a.Prompt,
		Creativity:      a.Creativity,
		Style:           a.Style,
		StyleWeight:     a.StyleWeight,
		Passed:          r.Passed,
		MatchedKeywords: r.MatchedKeywords,
		Mode:            string(mode),
	})
	if err != nil {
		s.logger.Warn("failed to record attempt", "level", l.ID, "err", err)
	}
}

func resultLabel(r evaluate.Result) string {
	switch {
	case r.Passed:
		return "Solved"
	case r.HasKeywordMatch:
		return "Parameters missed"
	default:
		return "Not solved"
	}
}

func completionText(c *levels.Catalog, l levels.Level) (title, message string) {
	if c.IsFinal(l.ID) {
		return FinalCompleteTitle, FinalCompleteText
	}
	return LevelCompleteTitle, fmt.Sprintf(levelCompleteText, l.EducationalFocus)
}
