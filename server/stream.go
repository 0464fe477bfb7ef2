package server

import (
	"encoding/json"
	"net/http"

	sse "github.com/tmaxmax/go-sse"

	"github.com/hupe1980/agentweave/engine"
)

// SSE event types emitted by the streaming endpoint. The done event is the
// sentinel completion marker clients wait for.
var (
	typeChunk  = sse.Type("chunk")
	typeTool   = sse.Type("tool")
	typeResult = sse.Type("result")
	typeDone   = sse.Type("done")
)

// doneSentinel is the payload of the terminal done event.
const doneSentinel = "[DONE]"

// handleStream drives one invocation while forwarding every engine event to
// the client as it arrives, in emission order, terminated by the result
// payload and the done sentinel.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if !s.decode(w, r, &req) {
		return
	}
	user, ok := s.checkQuota(w, r)
	if !ok {
		return
	}

	a, err := s.resolveAgent(req)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.restoreConversation(a, req.Conversation)

	sess, err := sse.Upgrade(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	events, resultCh := a.Stream(r.Context(), req.Prompt)
	for ev := range events {
		switch e := ev.(type) {
		case engine.AssistantEvent:
			if e.Text != "" {
				s.send(sess, typeChunk, e.Text)
			}
			for _, tu := range e.ToolUses {
				if payload, err := json.Marshal(tu); err == nil {
					s.send(sess, typeTool, string(payload))
				}
			}
		case engine.ResultEvent:
			// The mapped final result follows once the sequence ends.
		}
	}

	res := <-resultCh
	s.persistConversation(a, req.Conversation, res)
	s.recordUsage(r, user, res)

	if payload, err := json.Marshal(res); err == nil {
		s.send(sess, typeResult, string(payload))
	}
	s.send(sess, typeDone, doneSentinel)
}

func (s *Server) send(sess *sse.Session, t sse.EventType, data string) {
	msg := &sse.Message{Type: t}
	msg.AppendData(data)
	if err := sess.Send(msg); err != nil {
		s.logger.Warn("sse send failed", "error", err)
		return
	}
	if err := sess.Flush(); err != nil {
		s.logger.Warn("sse flush failed", "error", err)
	}
}
