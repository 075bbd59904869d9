package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	LevelID int       // attempts only; 0 = any level
}

// AttemptEventData captures one submitted prompt and its verdict.
type AttemptEventData struct {
	SessionID       string
	LevelID         int
	Prompt          string
	Creativity      int
	Style           string
	StyleWeight     int
	Passed          bool
	MatchedKeywords []string
	Mode            string
}

// AttemptEventRecord is a stored attempt.
type AttemptEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// LevelStats aggregates attempts for one level.
type LevelStats struct {
	LevelID  int
	Attempts int
	Passed   int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM requests by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token counts by model for cost estimation.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAttempt(ctx context.Context, data AttemptEventData) error
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)
	AttemptStats(ctx context.Context) ([]LevelStats, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// ProgressState is the persisted level progress.
type ProgressState struct {
	HighestUnlocked int
	Completed       map[int]LevelCompletion

	// Mode is the last explanation mode the player chose, if any.
	Mode string
}

// LevelCompletion records when a level was first solved.
type LevelCompletion struct {
	CompletedAt time.Time
	Attempts    int
}

// ProgressRepo loads and saves level progress.
type ProgressRepo interface {
	// Load returns a zero HighestUnlocked when nothing has been saved.
	Load(ctx context.Context) (ProgressState, error)
	Save(ctx context.Context, state ProgressState) error
	Reset(ctx context.Context) error
}
