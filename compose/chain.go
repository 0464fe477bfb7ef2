package compose

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// chainWrapper wraps a stage's output before feeding it to the next stage.
// The exact byte layout is part of the contract and covered by tests.
const chainWrapper = "Previous agent output:\n%s\n\nPlease continue with your task."

// Chain executes the specs strictly in order: the first agent receives
// initialInput verbatim, every later agent receives the previous stage's
// result text wrapped by chainWrapper. Execution stops at the first failing
// stage; later agents are never constructed or invoked. The returned slice
// holds one Result per executed stage, so it is shorter than specs exactly
// when a stage failed.
func Chain(ctx context.Context, eng engine.Engine, specs []Spec, initialInput string, optFns ...func(o *Options)) []agent.Result {
	opts := applyOptions(optFns)

	results := make([]agent.Result, 0, len(specs))
	input := initialInput
	for _, spec := range specs {
		res := newAgent(eng, spec.Name, spec.SystemPrompt, opts).Run(ctx, input)
		results = append(results, res)
		if !res.Success {
			opts.Logger.Warn("chain stopped at failing stage", "agent", spec.Name, "error", res.ErrorMessage)
			break
		}
		input = fmt.Sprintf(chainWrapper, res.Text)
	}
	return results
}
