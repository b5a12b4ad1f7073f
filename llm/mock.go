package llm

import (
	"context"
	"sync"
)

// Mock is a scripted Client for tests. Scripted replies are consumed in
// order; once the script is exhausted, CompleteFunc answers if set, and a
// canned successful result otherwise. Every request is recorded in
// Requests in call order.
type Mock struct {
	CompleteFunc func(ctx context.Context, req Request) (*Result, error)
	Caps         Capabilities

	mu       sync.Mutex
	script   []MockReply
	Requests []Request
}

// MockReply is one scripted completion outcome.
type MockReply struct {
	Result *Result
	Err    error
}

// Reply is shorthand for a successful scripted completion.
func Reply(text string) MockReply {
	return MockReply{Result: &Result{Text: text, StopReason: StopEnd, ResponseID: "mock"}}
}

// Enqueue appends scripted replies for successive Complete calls.
func (m *Mock) Enqueue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, replies...)
}

// Complete implements Client.
func (m *Mock) Complete(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	var reply *MockReply
	if len(m.script) > 0 {
		r := m.script[0]
		m.script = m.script[1:]
		reply = &r
	}
	m.mu.Unlock()

	if reply != nil {
		return reply.Result, reply.Err
	}
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &Result{Text: "ok", StopReason: StopEnd, ResponseID: "mock"}, nil
}

// Capabilities implements Client.
func (m *Mock) Capabilities() Capabilities {
	return m.Caps
}

// Calls returns how many completions have been requested.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
