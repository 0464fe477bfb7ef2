package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockEngine is a lightweight in-memory Engine useful for tests & examples.
// It emits scripted event sequences keyed by prompt or by system prompt, with
// a deterministic fallback response. All methods are safe for concurrent use;
// Submit may be driven from many goroutines at once (parallel fan-out tests
// rely on this).
type MockEngine struct {
	mu        sync.Mutex
	byPrompt  map[string][]Event
	bySystem  map[string][]Event
	handler   func(req Request) []Event
	submitErr error
	latency   time.Duration
	calls     []Request
	sessions  int
}

// NewMockEngine constructs an empty MockEngine with default echo behavior.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		byPrompt: make(map[string][]Event),
		bySystem: make(map[string][]Event),
	}
}

// Script registers a canned event sequence for an exact prompt.
func (m *MockEngine) Script(prompt string, events ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPrompt[prompt] = events
}

// ScriptSystem registers a canned event sequence keyed by the request's
// system prompt, which lets tests target a single agent in a fan-out where
// every agent receives the same user prompt.
func (m *MockEngine) ScriptSystem(systemPrompt string, events ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySystem[systemPrompt] = events
}

// SetHandler installs a fallback function invoked when no script matches.
func (m *MockEngine) SetHandler(fn func(req Request) []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// FailWith makes every subsequent Submit surface err on the error channel,
// simulating a transport failure. Pass nil to clear.
func (m *MockEngine) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitErr = err
}

// SetLatency delays event emission per invocation, for concurrency-shape tests.
func (m *MockEngine) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// Calls returns a copy of all requests received so far in arrival order.
func (m *MockEngine) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Submit invocations received so far.
func (m *MockEngine) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Submit implements Engine. Scripted sequences are replayed verbatim; the
// default behavior echoes the prompt and terminates with a success result
// whose session id is either the resumed one or a fresh deterministic id.
func (m *MockEngine) Submit(ctx context.Context, req Request) (<-chan Event, <-chan error) {
	out := make(chan Event, 16)
	errCh := make(chan error, 1)

	m.mu.Lock()
	m.calls = append(m.calls, req)
	events, scripted := m.byPrompt[req.Prompt]
	if !scripted {
		events, scripted = m.bySystem[req.Config.SystemPrompt]
	}
	if !scripted && m.handler != nil {
		events = m.handler(req)
		scripted = events != nil
	}
	if !scripted {
		events = m.defaultEventsLocked(req)
	}
	submitErr := m.submitErr
	latency := m.latency
	m.mu.Unlock()

	go func() {
		defer close(out)
		defer close(errCh)

		if latency > 0 {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case <-time.After(latency):
			}
		}

		if submitErr != nil {
			errCh <- submitErr
			return
		}

		for _, ev := range events {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case out <- ev:
			}
		}
	}()

	return out, errCh
}

// defaultEventsLocked builds the echo sequence; caller holds the lock.
func (m *MockEngine) defaultEventsLocked(req Request) []Event {
	text := fmt.Sprintf("Mock response to: %s", req.Prompt)
	sessionID := req.Config.Resume
	if sessionID == "" {
		m.sessions++
		sessionID = fmt.Sprintf("mock-session-%d", m.sessions)
	}
	return []Event{
		AssistantEvent{Text: text},
		ResultEvent{
			Subtype:   SubtypeSuccess,
			SessionID: sessionID,
			NumTurns:  1,
			Usage:     Usage{InputTokens: len(req.Prompt), OutputTokens: len(text)},
		},
	}
}
