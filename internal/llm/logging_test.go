package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptlab/internal/store"
)

type recorderFunc func(ctx context.Context, data store.LLMRequestEventData) error

func (f recorderFunc) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return f(ctx, data)
}

func TestLogging_RecordsSuccess(t *testing.T) {
	var got []store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		got = append(got, d)
		return nil
	})
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"explanation":"x"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, "anthropic", rec, log.New(io.Discard))

	ctx := WithPurpose(context.Background(), "explanation")
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "why a tree?"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "anthropic", d.Provider)
	assert.Equal(t, "mock", d.Model)
	assert.Equal(t, "explanation", d.Purpose)
	assert.True(t, d.Success)
	assert.Equal(t, 12, d.InputTokens)
	assert.Equal(t, 7, d.OutputTokens)
	assert.Equal(t, `{"explanation":"x"}`, d.ResponseBody)
	assert.Contains(t, d.RequestBody, "[system]\nbe brief")
	assert.Contains(t, d.RequestBody, "[user]\nwhy a tree?")
	assert.Contains(t, d.RequestBody, "[schema: test-explanation]")
}

func TestLogging_RecordsFailureAndSurvivesRecorderError(t *testing.T) {
	var got store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		got = d
		return errors.New("disk full")
	})
	var logs strings.Builder
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "openai", rec, log.New(&logs))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)

	assert.False(t, got.Success)
	assert.Equal(t, "unknown", got.Purpose)
	assert.Contains(t, got.ErrorMessage, "down")
	assert.Contains(t, logs.String(), "failed to record LLM request event")
}

func TestLogging_RecordsAfterCancellation(t *testing.T) {
	var recordCtxErr error
	rec := recorderFunc(func(ctx context.Context, _ store.LLMRequestEventData) error {
		recordCtxErr = ctx.Err()
		return nil
	})
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithLogging(mock, "gemini", rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
	assert.NoError(t, recordCtxErr)
}
