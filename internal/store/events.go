package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// applyQueryOpts adds the common event filters and newest-first ordering.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) exec(ctx context.Context, query string, args []any) error {
	return r.drv.Exec(ctx, query, args, nil)
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	keywords := data.MatchedKeywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	query, args := builder().Insert("attempt_events").
		Columns("sequence", "timestamp", "session_id", "level_id", "prompt",
			"creativity", "style", "style_weight", "passed", "matched_keywords", "mode").
		Values(seqNum, time.Now().UnixNano(), data.SessionID, data.LevelID, data.Prompt,
			data.Creativity, data.Style, data.StyleWeight, data.Passed, string(kw), data.Mode).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "session_id", "level_id", "prompt",
		"creativity", "style", "style_weight", "passed", "matched_keywords", "mode").
		From(b.Table("attempt_events"))
	if opts.LevelID > 0 {
		sel.Where(entsql.EQ("level_id", opts.LevelID))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var result []AttemptEventRecord
	for rows.Next() {
		var (
			rec      AttemptEventRecord
			ts       int64
			keywords string
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.LevelID, &rec.Prompt,
			&rec.Creativity, &rec.Style, &rec.StyleWeight, &rec.Passed, &keywords, &rec.Mode)
		if err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		if err := json.Unmarshal([]byte(keywords), &rec.MatchedKeywords); err != nil {
			return nil, fmt.Errorf("decode keywords of attempt %d: %w", rec.ID, err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *eventRepo) AttemptStats(ctx context.Context) ([]LevelStats, error) {
	b := builder()
	query, args := b.Select("level_id", entsql.Count("*"), entsql.Sum("passed")).
		From(b.Table("attempt_events")).
		GroupBy("level_id").
		OrderBy("level_id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var result []LevelStats
	for rows.Next() {
		var s LevelStats
		if err := rows.Scan(&s.LevelID, &s.Attempts, &s.Passed); err != nil {
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert("llm_request_events").
		Columns("sequence", "timestamp", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
			"request_body", "response_body").
		Values(seqNum, time.Now().UnixNano(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
			data.RequestBody, data.ResponseBody).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

func (r *eventRepo) queryLLM(ctx context.Context, sel *entsql.Selector) ([]LLMRequestEventRecord, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var result []LLMRequestEventRecord
	for rows.Next() {
		var (
			rec LLMRequestEventRecord
			ts  int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage,
			&rec.RequestBody, &rec.ResponseBody)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	b := builder()
	sel := b.Select(llmEventColumns...).From(b.Table("llm_request_events"))
	return r.queryLLM(ctx, applyQueryOpts(sel, opts))
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	b := builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table("llm_request_events")).
		Where(entsql.EQ("id", id)).
		Limit(1)
	events, err := r.queryLLM(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	b := builder()
	query, args := b.Select("purpose", entsql.Count("*"), entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"), entsql.Avg("latency_ms")).
		From(b.Table("llm_request_events")).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM usage by purpose: %w", err)
	}
	defer rows.Close()

	var result []LLMUsageStats
	for rows.Next() {
		var (
			s   LLMUsageStats
			avg float64
		)
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		s.AvgLatencyMs = int64(avg)
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	b := builder()
	query, args := b.Select("model", entsql.Count("*"), entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens")).
		From(b.Table("llm_request_events")).
		Where(entsql.EQ("success", true)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}
	defer rows.Close()

	var result []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM model usage: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
