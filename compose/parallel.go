package compose

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// Parallel constructs one fresh agent per spec and invokes all of them
// concurrently with the identical input, joining on completion of the whole
// batch. One agent's failure never cancels or blocks its siblings; the
// failure is recorded in that agent's own result slot. The returned map is
// keyed by agent name; when two specs share a name the entry produced by the
// later spec wins (deterministic last-writer-wins in spec order).
func Parallel(ctx context.Context, eng engine.Engine, specs []Spec, input string, optFns ...func(o *Options)) map[string]agent.Result {
	opts := applyOptions(optFns)

	results := make([]agent.Result, len(specs))
	var g errgroup.Group
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	for i, spec := range specs {
		g.Go(func() error {
			results[i] = newAgent(eng, spec.Name, spec.SystemPrompt, opts).Run(ctx, input)
			return nil
		})
	}
	// Run never returns an error, so Wait only joins the batch.
	_ = g.Wait()

	byName := make(map[string]agent.Result, len(specs))
	for i, spec := range specs {
		byName[spec.Name] = results[i]
	}
	return byName
}
