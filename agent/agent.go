package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/logging"
)

// Options holds optional dependencies passed to New().
type Options struct {
	// Logger receives per-invocation diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent is a configured, stateful handle to the query engine. Exactly one
// Agent owns its session reference; the reference is never shared between
// instances. Agents are safe for concurrent use, although composition
// strategies deliberately give each concurrent task its own instance.
type Agent struct {
	config Config
	engine engine.Engine
	logger logging.Logger

	mu        sync.Mutex
	sessionID string
}

// New constructs an Agent from cfg with defaults applied. The session
// reference starts unset.
func New(cfg Config, eng engine.Engine, optFns ...func(o *Options)) *Agent {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Agent{config: cfg.withDefaults(), engine: eng, logger: opts.Logger}
}

// Name returns the agent's configured name.
func (a *Agent) Name() string { return a.config.Name }

// Config returns a copy of the agent's immutable configuration.
func (a *Agent) Config() Config { return a.config }

// SessionID returns the current session reference, or "" when unset.
func (a *Agent) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

// SetSessionID overwrites the session reference to resume a prior conversation.
func (a *Agent) SetSessionID(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessionID = id
}

// Reset clears the session reference so the next invocation starts fresh.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessionID = ""
}

// Run drives one full invocation to completion, consuming the entire event
// sequence, and returns the mapped Result. It never returns a Go error:
// engine failures, non-success terminals and missing terminals are all
// encoded in the Result.
func (a *Agent) Run(ctx context.Context, prompt string) Result {
	events, resultCh := a.Stream(ctx, prompt)
	for range events {
	}
	return <-resultCh
}

// Stream has identical semantics to Run but forwards every raw engine event
// to the returned channel as it arrives, in emission order and without
// buffering beyond a small pipeline window. The result channel delivers
// exactly one final Result after the event channel is closed. Callers must
// drain the event channel.
func (a *Agent) Stream(ctx context.Context, prompt string) (<-chan engine.Event, <-chan Result) {
	out := make(chan engine.Event, 32)
	resultCh := make(chan Result, 1)

	go func() {
		defer close(out)
		defer close(resultCh)

		runCtx := ctx
		cancel := func() {}
		if a.config.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		}
		defer cancel()

		start := time.Now()
		req := engine.Request{Prompt: prompt, Config: a.config.engineConfig(a.SessionID())}
		a.logger.Debug("submitting query", "agent", a.config.Name, "resume", req.Config.Resume != "")

		events, errCh := a.engine.Submit(runCtx, req)

		var text strings.Builder
		var terminal *engine.ResultEvent
		for ev := range events {
			switch e := ev.(type) {
			case engine.AssistantEvent:
				text.WriteString(e.Text)
			case engine.ResultEvent:
				terminal = &e
			}
			out <- ev
		}

		res := a.finalize(<-errCh, terminal, text.String())
		logging.LogAgentRun(a.logger, a.config.Name, res.NumTurns, time.Since(start), res.Success, res.ErrorMessage)
		resultCh <- res
	}()

	return out, resultCh
}

// finalize maps the drained event sequence onto a Result. The session
// reference is only advanced on success so a failed invocation cannot
// clobber a resumable conversation.
func (a *Agent) finalize(submitErr error, terminal *engine.ResultEvent, text string) Result {
	if submitErr != nil {
		return Failure(ErrCodeEngine, submitErr.Error())
	}
	if terminal == nil {
		return Failure(ErrCodeNoResult, "no result received")
	}

	res := Result{
		Text:         text,
		SessionID:    terminal.SessionID,
		NumTurns:     terminal.NumTurns,
		Usage:        &terminal.Usage,
		TotalCostUSD: terminal.TotalCostUSD,
	}
	if !terminal.Success() {
		res.ErrorCode = string(terminal.Subtype)
		res.Errors = terminal.Errors
		if len(terminal.Errors) > 0 {
			res.ErrorMessage = terminal.Errors[0]
		} else {
			res.ErrorMessage = fmt.Sprintf("query finished with subtype %q", terminal.Subtype)
		}
		return res
	}

	res.Success = true
	if terminal.SessionID != "" {
		a.SetSessionID(terminal.SessionID)
	}
	return res
}
