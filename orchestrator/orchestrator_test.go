package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

func newOrchestrator(t *testing.T, eng engine.Engine, names ...string) *Orchestrator {
	t.Helper()
	o := New(eng)
	for _, name := range names {
		_, err := o.Register(agent.Config{Name: name, SystemPrompt: "you are " + name})
		require.NoError(t, err)
	}
	return o
}

func TestRegister_RejectsInvalidConfig(t *testing.T) {
	o := New(engine.NewMockEngine())
	_, err := o.Register(agent.Config{})
	assert.Error(t, err)
}

func TestRegister_DuplicateNameReplacesAgent(t *testing.T) {
	eng := engine.NewMockEngine()
	o := newOrchestrator(t, eng, "alpha")

	res := o.Execute(context.Background(), "alpha", "task")
	require.True(t, res.Success)
	a, ok := o.Agent("alpha")
	require.True(t, ok)
	require.NotEmpty(t, a.SessionID())

	// Re-registering discards the prior agent and its session state.
	_, err := o.Register(agent.Config{Name: "alpha", SystemPrompt: "v2"})
	require.NoError(t, err)
	replaced, ok := o.Agent("alpha")
	require.True(t, ok)
	assert.Empty(t, replaced.SessionID())
	assert.Len(t, o.Names(), 1)
}

func TestExecute_UnknownAgent(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha")

	res := o.Execute(context.Background(), "ghost", "task")

	assert.False(t, res.Success)
	assert.Equal(t, ErrCodeAgentNotFound, res.ErrorCode)
	assert.Contains(t, res.ErrorMessage, "agent not found")
	// No state mutated on failure.
	assert.Empty(t, o.Current())
}

func TestExecute_SetsCursorAndPreservesSession(t *testing.T) {
	eng := engine.NewMockEngine()
	o := newOrchestrator(t, eng, "alpha")

	res := o.Execute(context.Background(), "alpha", "first task")
	require.True(t, res.Success)
	assert.Equal(t, "alpha", o.Current())

	// A second execute resumes the same conversation.
	res2 := o.Execute(context.Background(), "alpha", "second task")
	require.True(t, res2.Success)
	calls := eng.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, res.SessionID, calls[1].Config.Resume)
}

func TestHandoff_WithoutCurrentAgent(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha", "beta")

	res := o.Handoff(context.Background(), "beta", "take over", nil)

	assert.False(t, res.Success)
	assert.Equal(t, ErrCodeNoCurrentAgent, res.ErrorCode)
	assert.Equal(t, "no current agent to hand off from", res.ErrorMessage)
	assert.Empty(t, o.HandoffHistory())
}

func TestHandoff_UnknownTargetLeavesCursorUnchanged(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha")
	require.True(t, o.Execute(context.Background(), "alpha", "task").Success)

	res := o.Handoff(context.Background(), "ghost", "take over", nil)

	assert.False(t, res.Success)
	assert.Equal(t, ErrCodeAgentNotFound, res.ErrorCode)
	assert.Contains(t, res.ErrorMessage, "target agent not found")
	assert.Equal(t, "alpha", o.Current())
	assert.Empty(t, o.HandoffHistory())
}

func TestHandoff_DelegatesWithSynthesizedPrompt(t *testing.T) {
	eng := engine.NewMockEngine()
	o := newOrchestrator(t, eng, "alpha", "beta")
	require.True(t, o.Execute(context.Background(), "alpha", "task").Success)

	res := o.Handoff(context.Background(), "beta", "summarize the findings", map[string]any{"priority": "high"})
	require.True(t, res.Success)

	assert.Equal(t, "beta", o.Current())

	history := o.HandoffHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "alpha", history[0].From)
	assert.Equal(t, "beta", history[0].To)
	assert.Equal(t, "summarize the findings", history[0].Context)
	assert.NotEmpty(t, history[0].ID)

	calls := eng.Calls()
	require.Len(t, calls, 2)
	prompt := calls[1].Prompt
	assert.Contains(t, prompt, `Handoff from agent "alpha"`)
	assert.Contains(t, prompt, "Context: summarize the findings")
	assert.Contains(t, prompt, `"priority": "high"`)
}

func TestHandoff_ChainAdvancesCursor(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha", "beta", "gamma")
	require.True(t, o.Execute(context.Background(), "alpha", "task").Success)

	require.True(t, o.Handoff(context.Background(), "beta", "step two", nil).Success)
	require.True(t, o.Handoff(context.Background(), "gamma", "step three", nil).Success)

	history := o.HandoffHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "beta", history[1].From)
	assert.Equal(t, "gamma", history[1].To)
	assert.Equal(t, "gamma", o.Current())
}

func TestHandoffHistory_IsDefensiveCopy(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha", "beta")
	require.True(t, o.Execute(context.Background(), "alpha", "task").Success)
	require.True(t, o.Handoff(context.Background(), "beta", "ctx", nil).Success)

	history := o.HandoffHistory()
	history[0].From = "tampered"

	assert.Equal(t, "alpha", o.HandoffHistory()[0].From)
}

func TestReset_ClearsStateButKeepsAgents(t *testing.T) {
	o := newOrchestrator(t, engine.NewMockEngine(), "alpha", "beta")
	require.True(t, o.Execute(context.Background(), "alpha", "task").Success)
	require.True(t, o.Handoff(context.Background(), "beta", "ctx", nil).Success)

	o.Reset()

	assert.Empty(t, o.Current())
	assert.Empty(t, o.HandoffHistory())
	assert.ElementsMatch(t, []string{"alpha", "beta"}, o.Names())
	for _, name := range o.Names() {
		a, ok := o.Agent(name)
		require.True(t, ok)
		assert.Empty(t, a.SessionID())
	}
}
