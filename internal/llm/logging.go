package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/promptlab/internal/store"
)

// EventRecorder persists LLM request events. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every request as an event. A failure to record
// never fails the request.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder EventRecorder
	logger   *log.Logger
}

// WithLogging wraps p with event recording. name is the configured provider
// name stored alongside each event.
func WithLogging(p Provider, name string, recorder EventRecorder, logger *log.Logger) Provider {
	return &LoggingProvider{inner: p, provider: name, recorder: recorder, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Recording uses a fresh context so a cancelled request is still logged.
	if logErr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil && l.logger != nil {
		l.logger.Warn("failed to record LLM request event", "err", logErr)
	}
	if err != nil && l.logger != nil {
		l.logger.Debug("llm request failed", "model", data.Model, "purpose", data.Purpose, "err", err)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders req in a readable form for `promptlab llm view`.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
