package compose

import (
	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/logging"
)

// Spec describes one ad hoc agent in a chain, fan-out or vote.
type Spec struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
}

// Stage describes one pipeline stage. Transform, when non-nil, is applied to
// this stage's result text before it is handed to the next stage.
type Stage struct {
	Name         string
	SystemPrompt string
	Transform    func(string) string
}

// Delegate describes an agent advertised to a supervisor.
type Delegate struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Description  string `json:"description"`
}

// Options tunes strategy execution. The zero value is usable.
type Options struct {
	// Logger receives per-agent diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Model overrides the engine default for every constructed agent.
	Model string
	// MaxTurns bounds each agent invocation; 0 keeps the agent default.
	MaxTurns int
	// Limit caps concurrently running agents in Parallel and Vote;
	// 0 means unbounded.
	Limit int
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// newAgent builds a throwaway agent for one strategy invocation.
func newAgent(eng engine.Engine, name, systemPrompt string, opts Options) *agent.Agent {
	cfg := agent.Config{
		Name:         name,
		SystemPrompt: systemPrompt,
		Model:        opts.Model,
		MaxTurns:     opts.MaxTurns,
	}
	return agent.New(cfg, eng, func(ao *agent.Options) { ao.Logger = opts.Logger })
}
