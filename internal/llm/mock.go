package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. It returns queued responses in
// FIFO order and records every request. Once the queue is empty it serves
// Repeat when set, or ErrProviderUnavailable otherwise.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Repeat    *MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given queued responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// cannedExplanation keeps the offline oracle mode working without an API key.
const cannedExplanation = `{"explanation":"I matched the strongest words in your prompt to patterns I have seen before and filled everything else with the most typical details. Where you left things open, I guessed."}`

// NewCannedProvider returns a MockProvider that always answers with a fixed
// explanation. It backs the "mock" provider setting.
func NewCannedProvider() *MockProvider {
	return &MockProvider{Repeat: &MockResponse{
		Content: json.RawMessage(cannedExplanation),
	}}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Repeat != nil:
		resp = *m.Repeat
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
