package compose

import (
	"context"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// Pipeline executes the stages in order like Chain, but the hand-off between
// stages applies the finished stage's Transform to its result text when one
// is supplied, and otherwise passes the raw result text unchanged. No
// wrapper text is added. Execution stops at the first failing stage.
//
// It returns the final Result reached (the failing one if a stage failed)
// plus a map from stage name to that stage's Result covering only the stages
// actually executed. An empty stage list yields a failed final Result.
func Pipeline(ctx context.Context, eng engine.Engine, stages []Stage, initialInput string, optFns ...func(o *Options)) (agent.Result, map[string]agent.Result) {
	opts := applyOptions(optFns)

	byStage := make(map[string]agent.Result, len(stages))
	if len(stages) == 0 {
		return agent.Failure(ErrCodeEmptyPipeline, "pipeline has no stages"), byStage
	}

	var final agent.Result
	input := initialInput
	for _, stage := range stages {
		final = newAgent(eng, stage.Name, stage.SystemPrompt, opts).Run(ctx, input)
		byStage[stage.Name] = final
		if !final.Success {
			opts.Logger.Warn("pipeline stopped at failing stage", "stage", stage.Name, "error", final.ErrorMessage)
			break
		}
		if stage.Transform != nil {
			input = stage.Transform(final.Text)
		} else {
			input = final.Text
		}
	}
	return final, byStage
}

// ErrCodeEmptyPipeline marks a Pipeline call with no stages.
const ErrCodeEmptyPipeline = "empty_pipeline"
