package llm

import (
	"context"
	"sync"
)

// MockClient is a configurable Client for tests. Set CompleteFunc to control
// the answer; Requests records every call.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req Request) (*Completion, error)

	mu       sync.Mutex
	Requests []Request
}

// NewMockClient returns a mock that always answers text.
func NewMockClient(text string) *MockClient {
	return &MockClient{
		CompleteFunc: func(context.Context, Request) (*Completion, error) {
			return &Completion{Text: text, FinishReason: "stop"}, nil
		},
	}
}

func (m *MockClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &Completion{}, nil
}

func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent request, or the zero Request.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return Request{}
	}
	return m.Requests[len(m.Requests)-1]
}

func (m *MockClient) Provider() string { return "mock" }
func (m *MockClient) Model() string    { return "mock-model" }
