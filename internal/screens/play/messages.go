package play

import "github.com/abhisek/promptlab/internal/game"

// submitDoneMsg carries the outcome of an asynchronous submission.
type submitDoneMsg struct {
	Outcome game.Outcome
	Err     error
}

// advanceMsg is sent by the completion notice to move to the next level.
type advanceMsg struct{}
