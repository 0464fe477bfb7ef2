package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// Supervise runs exactly one ad hoc supervisor agent against a composite
// prompt embedding a rendered catalogue of the available delegates and the
// task text. The supervisor's base instructions become its system prompt.
//
// Known limitation, preserved deliberately: the catalogue only advertises
// the delegates textually. No automatic dispatch to them happens here; any
// actual delegation has to be carried out by a subsequent, separate call
// (for example via orchestrator.Handoff).
func Supervise(ctx context.Context, eng engine.Engine, supervisorPrompt string, delegates []Delegate, task string, optFns ...func(o *Options)) agent.Result {
	opts := applyOptions(optFns)

	var b strings.Builder
	b.WriteString("You coordinate the following delegate agents:\n")
	for _, d := range delegates {
		desc := d.Description
		if desc == "" {
			desc = "no description provided"
		}
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, desc)
	}
	fmt.Fprintf(&b, "\nTask: %s", task)

	return newAgent(eng, "supervisor", supervisorPrompt, opts).Run(ctx, b.String())
}
