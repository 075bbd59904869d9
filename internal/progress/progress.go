// Package progress tracks which levels the player has unlocked and solved.
//
// Levels unlock strictly in order: every level below HighestUnlocked is
// complete, HighestUnlocked itself is playable and everything above it is
// locked. Once the last level is solved HighestUnlocked is Total()+1.
package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/promptlab/internal/store"
)

// Status is the state of one level.
type Status int

const (
	StatusLocked Status = iota
	StatusUnlocked
	StatusCompleted
)

var statusIcons = map[Status]string{
	StatusLocked:    "🔒",
	StatusUnlocked:  "▶️",
	StatusCompleted: "⭐",
}

// Icon returns the level card icon for s.
func (s Status) Icon() string { return statusIcons[s] }

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusUnlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// Tracker holds progress for a catalog of Total() levels. A Tracker without
// a repository keeps progress in memory only.
type Tracker struct {
	mu        sync.Mutex
	total     int
	highest   int
	completed map[int]store.LevelCompletion
	attempts  map[int]int
	mode      string
	repo      store.ProgressRepo
	now       func() time.Time
}

// New returns an in-memory tracker with only level 1 unlocked.
func New(total int) *Tracker {
	return &Tracker{
		total:     total,
		highest:   1,
		completed: make(map[int]store.LevelCompletion),
		attempts:  make(map[int]int),
		now:       time.Now,
	}
}

// Load restores progress from repo. Stored values outside [1, total+1] are
// clamped, which covers a catalog that shrank since the last save.
func Load(ctx context.Context, repo store.ProgressRepo, total int) (*Tracker, error) {
	t := New(total)
	t.repo = repo

	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	t.highest = max(1, min(state.HighestUnlocked, total+1))
	for id, c := range state.Completed {
		if id >= 1 && id <= total {
			t.completed[id] = c
		}
	}
	t.mode = state.Mode
	return t, nil
}

// Total returns the number of levels tracked.
func (t *Tracker) Total() int { return t.total }

// HighestUnlocked returns the highest playable level, or Total()+1 once
// everything is complete.
func (t *Tracker) HighestUnlocked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.highest
}

// Status reports the state of levelID.
func (t *Tracker) Status(levelID int) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked(levelID)
}

func (t *Tracker) statusLocked(levelID int) Status {
	switch {
	case levelID < 1 || levelID > t.total:
		return StatusLocked
	case levelID < t.highest:
		return StatusCompleted
	case levelID == t.highest:
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

// IsPlayable reports whether levelID can be started.
func (t *Tracker) IsPlayable(levelID int) bool {
	return t.Status(levelID) != StatusLocked
}

// CompletedCount returns the number of solved levels.
func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.highest - 1
}

// AllComplete reports whether every level has been solved.
func (t *Tracker) AllComplete() bool {
	return t.CompletedCount() >= t.total
}

// Completion returns when levelID was first solved.
func (t *Tracker) Completion(levelID int) (store.LevelCompletion, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.completed[levelID]
	return c, ok
}

// RecordAttempt counts one submission against levelID.
func (t *Tracker) RecordAttempt(levelID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[levelID]++
}

// Complete marks levelID solved. Solving the highest unlocked level unlocks
// min(levelID+1, Total()+1); replaying an earlier level changes nothing.
// It reports whether a new playable level was unlocked.
func (t *Tracker) Complete(ctx context.Context, levelID int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.statusLocked(levelID) == StatusLocked {
		return false, fmt.Errorf("level %d is locked", levelID)
	}
	if _, ok := t.completed[levelID]; !ok {
		t.completed[levelID] = store.LevelCompletion{
			CompletedAt: t.now().UTC(),
			Attempts:    t.attempts[levelID],
		}
	}

	unlocked := false
	if levelID == t.highest {
		t.highest = min(levelID+1, t.total+1)
		unlocked = t.highest <= t.total
	}
	return unlocked, t.saveLocked(ctx)
}

// Reset locks everything but level 1 and forgets the saved mode.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.highest = 1
	t.mode = ""
	t.completed = make(map[int]store.LevelCompletion)
	t.attempts = make(map[int]int)
	if t.repo == nil {
		return nil
	}
	if err := t.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// Mode returns the saved explanation mode, or "" if none was chosen.
func (t *Tracker) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// SetMode remembers the player's explanation mode.
func (t *Tracker) SetMode(ctx context.Context, mode string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	return t.saveLocked(ctx)
}

// Summary is the one-line progress text shown on level select.
func (t *Tracker) Summary() string {
	done := t.CompletedCount()
	switch {
	case done == 0:
		return "Choose your level - Start your AI learning journey!"
	case done >= t.total:
		return "🎉 All levels completed! You have mastered PromptLab!"
	default:
		return fmt.Sprintf("Progress: %d/%d levels completed", done, t.total)
	}
}

func (t *Tracker) saveLocked(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}
	err := t.repo.Save(ctx, store.ProgressState{
		HighestUnlocked: t.highest,
		Completed:       t.completed,
		Mode:            t.mode,
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
