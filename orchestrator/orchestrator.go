package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/logging"
)

// Error codes for registry precondition failures. These are reported as
// failed results without touching the engine or mutating registry state.
const (
	ErrCodeAgentNotFound  = "agent_not_found"
	ErrCodeNoCurrentAgent = "no_current_agent"
)

// HandoffRecord is an append-only log entry describing one handoff between
// registered agents.
type HandoffRecord struct {
	ID        string         `json:"id"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Context   string         `json:"context"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Options holds optional dependencies passed to New().
type Options struct {
	Logger logging.Logger
}

// Orchestrator is a mutable collection of named agents plus a handoff log
// and a current-agent cursor. Registered agents keep their session state
// between calls; registering a duplicate name replaces the prior agent and
// discards its session.
type Orchestrator struct {
	engine engine.Engine
	logger logging.Logger

	mu      sync.Mutex
	agents  map[string]*agent.Agent
	history []HandoffRecord
	current string
}

// New constructs an empty Orchestrator backed by eng.
func New(eng engine.Engine, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		engine: eng,
		logger: opts.Logger,
		agents: make(map[string]*agent.Agent),
	}
}

// Register constructs a fresh agent from cfg and stores it under cfg.Name,
// replacing any prior entry under that name. The prior agent's session state
// for that name is lost.
func (o *Orchestrator) Register(cfg agent.Config) (*agent.Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := agent.New(cfg, o.engine, func(ao *agent.Options) { ao.Logger = o.logger })

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.agents[cfg.Name]; exists {
		o.logger.Warn("replacing registered agent", "agent", cfg.Name)
	}
	o.agents[cfg.Name] = a
	return a, nil
}

// Agent returns the registered agent under name, if any.
func (o *Orchestrator) Agent(name string) (*agent.Agent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	a, ok := o.agents[name]
	return a, ok
}

// Names returns the registered agent names in unspecified order.
func (o *Orchestrator) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, 0, len(o.agents))
	for name := range o.agents {
		names = append(names, name)
	}
	return names
}

// Current returns the current-agent cursor, or "" when unset.
func (o *Orchestrator) Current() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Execute runs the named agent with task. An unregistered name yields a
// failed result and leaves all registry state untouched; otherwise the
// cursor advances to name before delegation.
func (o *Orchestrator) Execute(ctx context.Context, name, task string) agent.Result {
	o.mu.Lock()
	a, ok := o.agents[name]
	if !ok {
		o.mu.Unlock()
		return agent.Failure(ErrCodeAgentNotFound, fmt.Sprintf("agent not found: %s", name))
	}
	o.current = name
	o.mu.Unlock()

	return a.Run(ctx, task)
}

// Handoff transfers control from the current agent to the registered agent
// named to, logging a HandoffRecord and delegating a synthesized handoff
// prompt. Preconditions fail fast without mutating cursor or history: no
// current agent, or an unregistered target.
func (o *Orchestrator) Handoff(ctx context.Context, to, contextText string, data map[string]any) agent.Result {
	o.mu.Lock()
	if o.current == "" {
		o.mu.Unlock()
		return agent.Failure(ErrCodeNoCurrentAgent, "no current agent to hand off from")
	}
	a, ok := o.agents[to]
	if !ok {
		o.mu.Unlock()
		return agent.Failure(ErrCodeAgentNotFound, fmt.Sprintf("target agent not found: %s", to))
	}
	from := o.current
	o.history = append(o.history, HandoffRecord{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Context:   contextText,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	o.current = to
	o.mu.Unlock()

	o.logger.Info("agent handoff", "from", from, "to", to)
	return a.Run(ctx, handoffPrompt(from, contextText, data))
}

// HandoffHistory returns a defensive copy of the handoff log in append order.
func (o *Orchestrator) HandoffHistory() []HandoffRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	history := make([]HandoffRecord, len(o.history))
	copy(history, o.history)
	return history
}

// Reset clears every registered agent's session reference, the handoff
// history and the cursor. Agents remain registered.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range o.agents {
		a.Reset()
	}
	o.history = nil
	o.current = ""
}

// handoffPrompt embeds the source agent, the context text and the optional
// data payload (serialized as JSON) into the prompt delivered to the target.
func handoffPrompt(from, contextText string, data map[string]any) string {
	prompt := fmt.Sprintf("Handoff from agent %q.\n\nContext: %s", from, contextText)
	if len(data) > 0 {
		if b, err := json.MarshalIndent(data, "", "  "); err == nil {
			prompt += "\n\nData:\n" + string(b)
		}
	}
	return prompt
}
