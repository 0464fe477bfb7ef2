package agentweave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/compose"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/internal/testutil"
)

func TestAgentWeave_RegisterAndExecute(t *testing.T) {
	w := New(engine.NewMockEngine())

	_, err := w.Register(agent.Config{Name: "worker", SystemPrompt: "Do the work."})
	require.NoError(t, err)

	res := w.Execute(context.Background(), "worker", "handle this")
	assert.True(t, res.Success)
	assert.Equal(t, "worker", w.Orchestrator().Current())
}

func TestAgentWeave_NewAgentIsUnregistered(t *testing.T) {
	w := New(engine.NewMockEngine())

	a := w.NewAgent(agent.Config{Name: "loner"})
	res := a.Run(context.Background(), "hi")

	assert.True(t, res.Success)
	assert.Empty(t, w.Orchestrator().Names())
}

func TestAgentWeave_Chain(t *testing.T) {
	eng := engine.NewMockEngine()
	w := New(eng)

	results := w.Chain(context.Background(), []compose.Spec{
		{Name: "outline"},
		{Name: "draft"},
	}, "write about tides")

	require.Len(t, results, 2)
	assert.True(t, results[1].Success)
	assert.Equal(t, 2, eng.CallCount())
}

func TestAgentWeave_Vote(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.ScriptSystem("pick one", testutil.SuccessScript("1", "sess-a")...)
	w := New(eng)

	vr := w.Vote(context.Background(), []compose.Spec{
		{Name: "judge", SystemPrompt: "pick one"},
	}, "Best?", []string{"north", "south"})

	assert.Equal(t, "north", vr.Winner)
}

func TestAgentWeave_Pipeline(t *testing.T) {
	w := New(engine.NewMockEngine())

	final, byStage := w.Pipeline(context.Background(), []compose.Stage{
		{Name: "analyze"},
		{Name: "summarize"},
	}, "raw data")

	assert.True(t, final.Success)
	assert.Len(t, byStage, 2)
}
