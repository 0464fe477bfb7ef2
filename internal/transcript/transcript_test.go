package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndResume(t *testing.T) {
	store := NewStore()

	assert.Equal(t, 1, store.Record("sess-1", "hi", "hello"))
	assert.Equal(t, 2, store.Record("sess-1", "more", "sure"))

	tr, err := store.Resume("sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, tr.NumTurns)
	require.Len(t, tr.Turns, 4)
	assert.Equal(t, Turn{Role: "user", Text: "hi"}, tr.Turns[0])
	assert.Equal(t, Turn{Role: "assistant", Text: "sure"}, tr.Turns[3])
}

func TestStore_ResumeUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Resume("nope")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestStore_ResumeReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Record("sess-1", "hi", "hello")

	tr, err := store.Resume("sess-1")
	require.NoError(t, err)
	tr.Turns[0].Text = "mutated"

	again, err := store.Resume("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Turns[0].Text)
}
