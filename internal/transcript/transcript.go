// Package transcript keeps per-session conversation history for engine
// adapters that emulate resumable sessions on top of stateless model APIs.
package transcript

import (
	"errors"
	"sync"
)

// ErrUnknownSession is returned when a resume token does not match any
// recorded session.
var ErrUnknownSession = errors.New("unknown session id")

// Turn is one conversational exchange entry.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Transcript is the recorded history of one session.
type Transcript struct {
	Turns    []Turn
	NumTurns int // completed assistant turns
}

// Store is a concurrency-safe in-memory transcript table keyed by session id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Transcript
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Transcript)}
}

// Resume returns a copy of the transcript for sessionID.
func (s *Store) Resume(sessionID string) (Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.sessions[sessionID]
	if !ok {
		return Transcript{}, ErrUnknownSession
	}
	cp := Transcript{Turns: make([]Turn, len(tr.Turns)), NumTurns: tr.NumTurns}
	copy(cp.Turns, tr.Turns)
	return cp, nil
}

// Record appends a completed user/assistant exchange to sessionID, creating
// the session if needed, and returns the updated assistant turn count.
func (s *Store) Record(sessionID, prompt, reply string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.sessions[sessionID]
	if !ok {
		tr = &Transcript{}
		s.sessions[sessionID] = tr
	}
	tr.Turns = append(tr.Turns, Turn{Role: "user", Text: prompt}, Turn{Role: "assistant", Text: reply})
	tr.NumTurns++
	return tr.NumTurns
}
