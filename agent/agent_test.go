package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/internal/testutil"
)

func newTestAgent(eng engine.Engine) *Agent {
	return New(Config{Name: "tester", SystemPrompt: "be helpful"}, eng)
}

func TestAgent_Run_Success(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.Script("hi", testutil.SuccessScript("hello there", "sess-1")...)

	a := newTestAgent(eng)
	res := a.Run(context.Background(), "hi")

	assert.True(t, res.Success)
	assert.Equal(t, "hello there", res.Text)
	assert.Equal(t, "sess-1", res.SessionID)
	assert.Equal(t, 1, res.NumTurns)
	require.NotNil(t, res.Usage)
	assert.Empty(t, res.ErrorCode)
	assert.Empty(t, res.ErrorMessage)

	// Session reference mirrors the terminal event's session identifier.
	assert.Equal(t, "sess-1", a.SessionID())
}

func TestAgent_Run_ResumesWithStoredSession(t *testing.T) {
	eng := engine.NewMockEngine()
	a := newTestAgent(eng)

	first := a.Run(context.Background(), "turn one")
	require.True(t, first.Success)
	require.Equal(t, "mock-session-1", a.SessionID())

	second := a.Run(context.Background(), "turn two")
	require.True(t, second.Success)

	calls := eng.Calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Config.Resume)
	assert.Equal(t, "mock-session-1", calls[1].Config.Resume)
	assert.Equal(t, "mock-session-1", second.SessionID)
}

func TestAgent_Run_EngineFailure(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.FailWith(errors.New("connection refused"))

	a := newTestAgent(eng)
	res := a.Run(context.Background(), "hi")

	assert.False(t, res.Success)
	assert.Equal(t, ErrCodeEngine, res.ErrorCode)
	assert.Contains(t, res.ErrorMessage, "connection refused")
	assert.Empty(t, a.SessionID())
}

func TestAgent_Run_NonSuccessTerminal(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.Script("hi", testutil.FailureScript(engine.SubtypeMaxTurns, "sess-9", "turn budget exhausted")...)

	a := newTestAgent(eng)
	res := a.Run(context.Background(), "hi")

	assert.False(t, res.Success)
	assert.Equal(t, string(engine.SubtypeMaxTurns), res.ErrorCode)
	assert.Equal(t, "turn budget exhausted", res.ErrorMessage)
	assert.Equal(t, []string{"turn budget exhausted"}, res.Errors)
	assert.Equal(t, "sess-9", res.SessionID)

	// Failed invocations do not clobber the agent's session reference.
	assert.Empty(t, a.SessionID())
}

func TestAgent_Run_NoResultReceived(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.Script("hi", testutil.NoResultScript("some", "chunks")...)

	a := newTestAgent(eng)
	res := a.Run(context.Background(), "hi")

	assert.False(t, res.Success)
	assert.Equal(t, ErrCodeNoResult, res.ErrorCode)
	assert.Equal(t, "no result received", res.ErrorMessage)
}

func TestAgent_Stream_PreservesEventOrder(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.Script("hi",
		engine.AssistantEvent{Text: "one "},
		engine.AssistantEvent{Text: "two "},
		engine.AssistantEvent{Text: "three"},
		engine.ResultEvent{Subtype: engine.SubtypeSuccess, SessionID: "sess-2", NumTurns: 1},
	)

	a := newTestAgent(eng)
	events, resultCh := a.Stream(context.Background(), "hi")

	var texts []string
	for ev := range events {
		if ae, ok := ev.(engine.AssistantEvent); ok {
			texts = append(texts, ae.Text)
		}
	}
	res := <-resultCh

	assert.Equal(t, []string{"one ", "two ", "three"}, texts)
	assert.True(t, res.Success)
	assert.Equal(t, "one two three", res.Text)
	assert.Equal(t, "sess-2", a.SessionID())
}

func TestAgent_Stream_TerminalSurvivesTrailingEvents(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.Script("hi",
		engine.AssistantEvent{Text: "before "},
		engine.ResultEvent{Subtype: engine.SubtypeSuccess, SessionID: "sess-7", NumTurns: 3},
		engine.AssistantEvent{Text: "after"},
	)

	a := newTestAgent(eng)
	res := a.Run(context.Background(), "hi")

	// The captured terminal must keep its own data even though the loop
	// keeps consuming events after it.
	assert.True(t, res.Success)
	assert.Equal(t, "sess-7", res.SessionID)
	assert.Equal(t, 3, res.NumTurns)
	assert.Equal(t, "before after", res.Text)
}

func TestAgent_SessionAccessors(t *testing.T) {
	a := newTestAgent(engine.NewMockEngine())

	assert.Empty(t, a.SessionID())
	a.SetSessionID("restored")
	assert.Equal(t, "restored", a.SessionID())
	a.Reset()
	assert.Empty(t, a.SessionID())
}

func TestAgent_SetSessionIsSentAsResume(t *testing.T) {
	eng := engine.NewMockEngine()
	a := newTestAgent(eng)
	a.SetSessionID("prior-session")

	res := a.Run(context.Background(), "continue")
	require.True(t, res.Success)

	calls := eng.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "prior-session", calls[0].Config.Resume)
}
