package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_PutGet(t *testing.T) {
	store := NewInMemoryStore()

	err := store.Put(Conversation{Key: "conv-1", AgentName: "writer", SessionID: "sess-1"})
	require.NoError(t, err)

	conv, err := store.Get("conv-1")
	require.NoError(t, err)
	assert.Equal(t, "writer", conv.AgentName)
	assert.Equal(t, "sess-1", conv.SessionID)
	assert.False(t, conv.Created.IsZero())
	assert.False(t, conv.Updated.IsZero())
}

func TestInMemoryStore_GetMissing(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_OverwriteKeepsCreated(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put(Conversation{Key: "conv-1", SessionID: "sess-1"}))
	first, err := store.Get("conv-1")
	require.NoError(t, err)

	require.NoError(t, store.Put(Conversation{Key: "conv-1", SessionID: "sess-2"}))
	second, err := store.Get("conv-1")
	require.NoError(t, err)

	assert.Equal(t, "sess-2", second.SessionID)
	assert.Equal(t, first.Created, second.Created)
	assert.False(t, second.Updated.Before(first.Updated))
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put(Conversation{Key: "conv-1"}))
	require.NoError(t, store.Delete("conv-1"))

	_, err := store.Get("conv-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("conv-1"))
}
