package store

import (
	"context"

	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migrator consumes. Every event table
// carries a globally unique sequence and a unix-nano timestamp.
var (
	attemptEventsColumns = []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "level_id", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647},
		{Name: "creativity", Type: field.TypeInt},
		{Name: "style", Type: field.TypeString, Default: ""},
		{Name: "style_weight", Type: field.TypeInt},
		{Name: "passed", Type: field.TypeBool},
		{Name: "matched_keywords", Type: field.TypeString, Default: "[]"},
		{Name: "mode", Type: field.TypeString, Default: ""},
	}
	attemptEventsTable = &entschema.Table{
		Name:       "attempt_events",
		Columns:    attemptEventsColumns,
		PrimaryKey: []*entschema.Column{attemptEventsColumns[0]},
		Indexes: []*entschema.Index{
			{Name: "attemptevent_level_id", Columns: []*entschema.Column{attemptEventsColumns[4]}},
			{Name: "attemptevent_session_id", Columns: []*entschema.Column{attemptEventsColumns[3]}},
		},
	}

	llmRequestEventsColumns = []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &entschema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*entschema.Column{llmRequestEventsColumns[0]},
		Indexes: []*entschema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*entschema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*entschema.Column{llmRequestEventsColumns[9]}},
		},
	}

	levelCompletionsColumns = []*entschema.Column{
		{Name: "level_id", Type: field.TypeInt},
		{Name: "completed_at", Type: field.TypeInt64},
		{Name: "attempts", Type: field.TypeInt, Default: 0},
	}
	levelCompletionsTable = &entschema.Table{
		Name:       "level_completions",
		Columns:    levelCompletionsColumns,
		PrimaryKey: []*entschema.Column{levelCompletionsColumns[0]},
	}

	settingsColumns = []*entschema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	settingsTable = &entschema.Table{
		Name:       "settings",
		Columns:    settingsColumns,
		PrimaryKey: []*entschema.Column{settingsColumns[0]},
	}

	tables = []*entschema.Table{
		attemptEventsTable,
		llmRequestEventsTable,
		levelCompletionsTable,
		settingsTable,
	}
)

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
