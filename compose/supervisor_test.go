package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/engine"
)

func TestSupervise_EmbedsDelegateCatalogueAndTask(t *testing.T) {
	eng := engine.NewMockEngine()

	delegates := []Delegate{
		{Name: "researcher", SystemPrompt: "research things", Description: "finds information"},
		{Name: "writer", SystemPrompt: "write things"},
	}
	res := Supervise(context.Background(), eng, "You are the coordinator.", delegates, "produce a report")

	assert.True(t, res.Success)

	calls := eng.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "You are the coordinator.", calls[0].Config.SystemPrompt)

	prompt := calls[0].Prompt
	assert.Contains(t, prompt, "- researcher: finds information")
	assert.Contains(t, prompt, "- writer: no description provided")
	assert.Contains(t, prompt, "Task: produce a report")
}

func TestSupervise_RunsExactlyOneAgent(t *testing.T) {
	eng := engine.NewMockEngine()

	delegates := []Delegate{
		{Name: "a", Description: "x"},
		{Name: "b", Description: "y"},
	}
	Supervise(context.Background(), eng, "coordinate", delegates, "task")

	// Delegates are advertised textually only; none of them is invoked.
	assert.Equal(t, 1, eng.CallCount())
}
