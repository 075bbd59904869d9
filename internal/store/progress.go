package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	settingHighestUnlocked = "highest_unlocked"
	settingMode            = "explanation_mode"
)

type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) Load(ctx context.Context) (ProgressState, error) {
	state := ProgressState{Completed: make(map[int]LevelCompletion)}
	b := builder()

	query, args := b.Select("key", "value").From(b.Table("settings")).Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return state, fmt.Errorf("query settings: %w", err)
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			rows.Close()
			return state, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case settingHighestUnlocked:
			n, err := strconv.Atoi(value)
			if err != nil {
				rows.Close()
				return state, fmt.Errorf("parse %s %q: %w", key, value, err)
			}
			state.HighestUnlocked = n
		case settingMode:
			state.Mode = value
		}
	}
	if err := rows.Close(); err != nil {
		return state, fmt.Errorf("close settings rows: %w", err)
	}

	query, args = b.Select("level_id", "completed_at", "attempts").
		From(b.Table("level_completions")).
		Query()
	rows = &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return state, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, attempts int
			at           int64
		)
		if err := rows.Scan(&id, &at, &attempts); err != nil {
			return state, fmt.Errorf("scan completion: %w", err)
		}
		state.Completed[id] = LevelCompletion{
			CompletedAt: time.Unix(0, at).UTC(),
			Attempts:    attempts,
		}
	}
	return state, rows.Err()
}

// Save replaces the stored progress with state in one transaction.
func (r *progressRepo) Save(ctx context.Context, state ProgressState) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin progress tx: %w", err)
	}

	if err := writeProgress(ctx, tx, state); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

func writeProgress(ctx context.Context, tx dialect.Tx, state ProgressState) error {
	if err := clearProgress(ctx, tx); err != nil {
		return err
	}

	b := builder()
	settings := b.Insert("settings").Columns("key", "value").
		Values(settingHighestUnlocked, strconv.Itoa(state.HighestUnlocked))
	if state.Mode != "" {
		settings.Values(settingMode, state.Mode)
	}
	query, args := settings.Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if len(state.Completed) == 0 {
		return nil
	}
	completions := b.Insert("level_completions").Columns("level_id", "completed_at", "attempts")
	for id, c := range state.Completed {
		completions.Values(id, c.CompletedAt.UnixNano(), c.Attempts)
	}
	query, args = completions.Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

func clearProgress(ctx context.Context, ex dialect.ExecQuerier) error {
	for _, table := range []string{"settings", "level_completions"} {
		query, args := builder().Delete(table).Query()
		if err := ex.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	return clearProgress(ctx, r.drv)
}
