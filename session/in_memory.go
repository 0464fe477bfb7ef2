package session

import (
	"sync"
	"time"
)

// InMemoryStore is a volatile Store implementation keeping conversations in
// a process-local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]Conversation
}

// NewInMemoryStore constructs an empty in-memory conversation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{conversations: make(map[string]Conversation)}
}

// Get implements Store.
func (s *InMemoryStore) Get(key string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[key]
	if !ok {
		return Conversation{}, ErrNotFound
	}
	return conv, nil
}

// Put implements Store. The Created timestamp of an existing entry is kept;
// Updated is always advanced.
func (s *InMemoryStore) Put(conv Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if prior, ok := s.conversations[conv.Key]; ok {
		conv.Created = prior.Created
	} else {
		conv.Created = now
	}
	conv.Updated = now
	s.conversations[conv.Key] = conv
	return nil
}

// Delete implements Store.
func (s *InMemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, key)
	return nil
}
