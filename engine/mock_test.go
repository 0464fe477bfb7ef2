package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, events <-chan Event, errCh <-chan error) ([]Event, error) {
	t.Helper()
	var collected []Event
	for ev := range events {
		collected = append(collected, ev)
	}
	return collected, <-errCh
}

func TestMockEngine_DefaultEcho(t *testing.T) {
	m := NewMockEngine()

	events, errCh := m.Submit(context.Background(), Request{Prompt: "hello"})
	collected, err := drain(t, events, errCh)

	require.NoError(t, err)
	require.Len(t, collected, 2)

	msg, ok := collected[0].(AssistantEvent)
	require.True(t, ok)
	assert.Equal(t, "Mock response to: hello", msg.Text)

	res, ok := collected[1].(ResultEvent)
	require.True(t, ok)
	assert.True(t, res.Success())
	assert.Equal(t, "mock-session-1", res.SessionID)
	assert.Equal(t, 1, res.NumTurns)
}

func TestMockEngine_ResumeKeepsSessionID(t *testing.T) {
	m := NewMockEngine()

	events, errCh := m.Submit(context.Background(), Request{
		Prompt: "again",
		Config: Config{Resume: "prior-session"},
	})
	collected, err := drain(t, events, errCh)

	require.NoError(t, err)
	res := collected[len(collected)-1].(ResultEvent)
	assert.Equal(t, "prior-session", res.SessionID)
}

func TestMockEngine_ScriptReplay(t *testing.T) {
	m := NewMockEngine()
	m.Script("scripted",
		AssistantEvent{Text: "a"},
		AssistantEvent{Text: "b"},
		ResultEvent{Subtype: SubtypeSuccess, SessionID: "s1", NumTurns: 2},
	)

	events, errCh := m.Submit(context.Background(), Request{Prompt: "scripted"})
	collected, err := drain(t, events, errCh)

	require.NoError(t, err)
	require.Len(t, collected, 3)
	assert.Equal(t, AssistantEvent{Text: "a"}, collected[0])
	assert.Equal(t, AssistantEvent{Text: "b"}, collected[1])
}

func TestMockEngine_ScriptSystemTargetsOneAgent(t *testing.T) {
	m := NewMockEngine()
	m.ScriptSystem("critic",
		ResultEvent{Subtype: SubtypeError, SessionID: "s1", Errors: []string{"nope"}},
	)

	events, errCh := m.Submit(context.Background(), Request{
		Prompt: "same prompt",
		Config: Config{SystemPrompt: "critic"},
	})
	collected, err := drain(t, events, errCh)

	require.NoError(t, err)
	require.Len(t, collected, 1)
	res := collected[0].(ResultEvent)
	assert.False(t, res.Success())
	assert.Equal(t, SubtypeError, res.Subtype)
}

func TestMockEngine_FailWith(t *testing.T) {
	m := NewMockEngine()
	m.FailWith(errors.New("transport down"))

	events, errCh := m.Submit(context.Background(), Request{Prompt: "x"})
	collected, err := drain(t, events, errCh)

	assert.Empty(t, collected)
	assert.EqualError(t, err, "transport down")
}

func TestMockEngine_RecordsCalls(t *testing.T) {
	m := NewMockEngine()

	for _, prompt := range []string{"one", "two"} {
		events, errCh := m.Submit(context.Background(), Request{Prompt: prompt})
		_, err := drain(t, events, errCh)
		require.NoError(t, err)
	}

	calls := m.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "one", calls[0].Prompt)
	assert.Equal(t, "two", calls[1].Prompt)
	assert.Equal(t, 2, m.CallCount())
}
