package session

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no conversation exists under a key.
var ErrNotFound = errors.New("session: conversation not found")

// Conversation records the metadata the core needs to resume a conversation
// later: which agent drove it and the engine's opaque session id.
type Conversation struct {
	Key       string    `json:"key"`
	AgentName string    `json:"agent_name"`
	SessionID string    `json:"session_id"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Store persists conversation metadata across independent invocations.
type Store interface {
	// Get returns the conversation stored under key or ErrNotFound.
	Get(key string) (Conversation, error)
	// Put stores conv under conv.Key, overwriting any prior entry and
	// maintaining the Created/Updated timestamps.
	Put(conv Conversation) error
	// Delete removes the conversation under key; deleting a missing key
	// is not an error.
	Delete(key string) error
}
