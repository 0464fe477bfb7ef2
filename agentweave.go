// Package agentweave provides a high-level façade over the query engine
// adapter, the agent registry and the composition strategies, enabling rapid
// construction of multi-agent systems on top of an opaque conversational
// query engine. Most applications interact with this package by:
//  1. Creating an AgentWeave via New() with an engine implementation
//     (engine/anthropic, engine/openai, or engine.MockEngine for tests)
//  2. Registering long-lived agents on the embedded orchestrator, or
//  3. Running one-shot compositions (Chain, Parallel, Vote, Pipeline,
//     Supervise) over ad hoc agent specs.
//
// The façade delegates orchestration to the orchestrator and compose
// packages while keeping setup ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply a
// structured logger and a durable session store behind the server package.
package agentweave

import (
	"context"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/compose"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/orchestrator"
)

// Options configures the AgentWeave instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentWeave is the high-level façade aggregating the engine and the registry.
type AgentWeave struct {
	engine engine.Engine
	orch   *orchestrator.Orchestrator
	logger logging.Logger
}

// New creates a new AgentWeave instance backed by eng.
func New(eng engine.Engine, optFns ...func(o *Options)) *AgentWeave {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &AgentWeave{
		engine: eng,
		orch:   orchestrator.New(eng, func(o *orchestrator.Options) { o.Logger = opts.Logger }),
		logger: opts.Logger,
	}
}

// Orchestrator exposes the embedded agent registry.
func (w *AgentWeave) Orchestrator() *orchestrator.Orchestrator { return w.orch }

// NewAgent constructs a standalone agent that is not registered anywhere.
func (w *AgentWeave) NewAgent(cfg agent.Config) *agent.Agent {
	return agent.New(cfg, w.engine, func(o *agent.Options) { o.Logger = w.logger })
}

// Register adds a long-lived named agent to the registry.
func (w *AgentWeave) Register(cfg agent.Config) (*agent.Agent, error) {
	return w.orch.Register(cfg)
}

// Execute runs a registered agent by name.
func (w *AgentWeave) Execute(ctx context.Context, name, task string) agent.Result {
	return w.orch.Execute(ctx, name, task)
}

// Chain runs the sequential chain strategy over ad hoc agent specs.
func (w *AgentWeave) Chain(ctx context.Context, specs []compose.Spec, input string) []agent.Result {
	return compose.Chain(ctx, w.engine, specs, input, w.composeOptions())
}

// Parallel runs the concurrent fan-out strategy over ad hoc agent specs.
func (w *AgentWeave) Parallel(ctx context.Context, specs []compose.Spec, input string) map[string]agent.Result {
	return compose.Parallel(ctx, w.engine, specs, input, w.composeOptions())
}

// Vote runs the consensus strategy over ad hoc agent specs.
func (w *AgentWeave) Vote(ctx context.Context, specs []compose.Spec, question string, options []string) compose.VoteResult {
	return compose.Vote(ctx, w.engine, specs, question, options, w.composeOptions())
}

// Pipeline runs the transforming pipeline strategy.
func (w *AgentWeave) Pipeline(ctx context.Context, stages []compose.Stage, input string) (agent.Result, map[string]agent.Result) {
	return compose.Pipeline(ctx, w.engine, stages, input, w.composeOptions())
}

// Supervise runs the supervisor delegation strategy.
func (w *AgentWeave) Supervise(ctx context.Context, supervisorPrompt string, delegates []compose.Delegate, task string) agent.Result {
	return compose.Supervise(ctx, w.engine, supervisorPrompt, delegates, task, w.composeOptions())
}

func (w *AgentWeave) composeOptions() func(o *compose.Options) {
	return func(o *compose.Options) { o.Logger = w.logger }
}
