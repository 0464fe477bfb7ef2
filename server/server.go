package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/compose"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/orchestrator"
	"github.com/hupe1980/agentweave/session"
)

// defaultAgentName is used for ad hoc run requests without an agent type.
const defaultAgentName = "assistant"

// Options holds dependency overrides passed to New().
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
	// Sessions persists conversation metadata; defaults to an in-memory store.
	Sessions session.Store
	// Entitlements guards invocations; defaults to AllowAll.
	Entitlements Entitlements
	// Agents are the named agent definitions addressable via agent_type.
	Agents []agent.Config
	// Orchestrator backs the execute/handoff endpoints; defaults to a fresh
	// registry pre-populated with Agents.
	Orchestrator *orchestrator.Orchestrator
}

// Server is the HTTP transport surface over the orchestration core.
type Server struct {
	engine       engine.Engine
	orch         *orchestrator.Orchestrator
	sessions     session.Store
	entitlements Entitlements
	logger       logging.Logger
	agents       map[string]agent.Config
	mux          *http.ServeMux
}

// New constructs a Server backed by eng.
func New(eng engine.Engine, optFns ...func(o *Options)) (*Server, error) {
	opts := Options{
		Logger:       logging.NoOpLogger{},
		Sessions:     session.NewInMemoryStore(),
		Entitlements: AllowAll{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	orch := opts.Orchestrator
	if orch == nil {
		orch = orchestrator.New(eng, func(o *orchestrator.Options) { o.Logger = opts.Logger })
	}

	s := &Server{
		engine:       eng,
		orch:         orch,
		sessions:     opts.Sessions,
		entitlements: opts.Entitlements,
		logger:       opts.Logger,
		agents:       make(map[string]agent.Config, len(opts.Agents)),
		mux:          http.NewServeMux(),
	}
	for _, cfg := range opts.Agents {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("server: agent %q: %w", cfg.Name, err)
		}
		s.agents[cfg.Name] = cfg
		if _, err := s.orch.Register(cfg); err != nil {
			return nil, err
		}
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/run", s.handleRun)
	s.mux.HandleFunc("POST /v1/stream", s.handleStream)
	s.mux.HandleFunc("POST /v1/execute", s.handleExecute)
	s.mux.HandleFunc("POST /v1/handoff", s.handleHandoff)
	s.mux.HandleFunc("GET /v1/handoffs", s.handleHandoffs)
	s.mux.HandleFunc("DELETE /v1/conversations/{key}", s.handleConversationDelete)
	s.mux.HandleFunc("GET /v1/agents", s.handleAgents)
	s.mux.HandleFunc("POST /v1/compose/chain", s.handleChain)
	s.mux.HandleFunc("POST /v1/compose/parallel", s.handleParallel)
	s.mux.HandleFunc("POST /v1/compose/vote", s.handleVote)
	s.mux.HandleFunc("POST /v1/compose/pipeline", s.handlePipeline)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

type runRequest struct {
	Prompt       string   `json:"prompt"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	AgentType    string   `json:"agent_type,omitempty"`
	Tools        []string `json:"tools,omitempty"`
	MaxTurns     int      `json:"max_turns,omitempty"`
	// Conversation keys the stored session metadata used to resume a prior
	// exchange and to persist the new session id afterwards.
	Conversation string `json:"conversation,omitempty"`
}

// resolveAgent builds the agent for a run/stream request: a registered
// definition when agent_type is given, an ad hoc one otherwise.
func (s *Server) resolveAgent(req runRequest) (*agent.Agent, error) {
	if req.AgentType != "" {
		cfg, ok := s.agents[req.AgentType]
		if !ok {
			return nil, fmt.Errorf("unknown agent type %q", req.AgentType)
		}
		if req.MaxTurns > 0 {
			cfg.MaxTurns = req.MaxTurns
		}
		return agent.New(cfg, s.engine, func(o *agent.Options) { o.Logger = s.logger }), nil
	}
	cfg := agent.Config{
		Name:         defaultAgentName,
		SystemPrompt: req.SystemPrompt,
		MaxTurns:     req.MaxTurns,
		AllowedTools: req.Tools,
	}
	return agent.New(cfg, s.engine, func(o *agent.Options) { o.Logger = s.logger }), nil
}

// restoreConversation loads a stored session id onto the agent, if any.
func (s *Server) restoreConversation(a *agent.Agent, key string) {
	if key == "" {
		return
	}
	conv, err := s.sessions.Get(key)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Warn("conversation lookup failed", "key", key, "error", err)
		}
		return
	}
	a.SetSessionID(conv.SessionID)
}

// persistConversation stores the session id reached by a successful run.
func (s *Server) persistConversation(a *agent.Agent, key string, res agent.Result) {
	if key == "" || !res.Success || res.SessionID == "" {
		return
	}
	err := s.sessions.Put(session.Conversation{
		Key:       key,
		AgentName: a.Name(),
		SessionID: res.SessionID,
	})
	if err != nil {
		s.logger.Warn("conversation persist failed", "key", key, "error", err)
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
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

	res := a.Run(r.Context(), req.Prompt)

	s.persistConversation(a, req.Conversation, res)
	s.recordUsage(r, user, res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agent string `json:"agent"`
		Task  string `json:"task"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	user, ok := s.checkQuota(w, r)
	if !ok {
		return
	}

	res := s.orch.Execute(r.Context(), req.Agent, req.Task)
	s.recordUsage(r, user, res)
	s.writeJSON(w, statusFor(res), res)
}

func (s *Server) handleHandoff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string         `json:"to"`
		Context string         `json:"context"`
		Data    map[string]any `json:"data,omitempty"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	user, ok := s.checkQuota(w, r)
	if !ok {
		return
	}

	res := s.orch.Handoff(r.Context(), req.To, req.Context, req.Data)
	s.recordUsage(r, user, res)
	s.writeJSON(w, statusFor(res), res)
}

// handleConversationDelete forgets the stored session metadata under key so
// the next run with that conversation starts a fresh engine session.
// Deleting an unknown key succeeds.
func (s *Server) handleConversationDelete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := s.sessions.Delete(key); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHandoffs(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"handoffs": s.orch.HandoffHistory()})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"agents": s.orch.Names()})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agents []compose.Spec `json:"agents"`
		Input  string         `json:"input"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.checkQuota(w, r); !ok {
		return
	}
	results := compose.Chain(r.Context(), s.engine, req.Agents, req.Input, s.composeOptions())
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleParallel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agents []compose.Spec `json:"agents"`
		Input  string         `json:"input"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.checkQuota(w, r); !ok {
		return
	}
	results := compose.Parallel(r.Context(), s.engine, req.Agents, req.Input, s.composeOptions())
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agents   []compose.Spec `json:"agents"`
		Question string         `json:"question"`
		Options  []string       `json:"options"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.checkQuota(w, r); !ok {
		return
	}
	vr := compose.Vote(r.Context(), s.engine, req.Agents, req.Question, req.Options, s.composeOptions())
	s.writeJSON(w, http.StatusOK, vr)
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		// Stage transforms are code, not data; HTTP pipelines run with the
		// identity hand-off between stages.
		Stages []compose.Spec `json:"stages"`
		Input  string         `json:"input"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.checkQuota(w, r); !ok {
		return
	}
	stages := make([]compose.Stage, len(req.Stages))
	for i, sp := range req.Stages {
		stages[i] = compose.Stage{Name: sp.Name, SystemPrompt: sp.SystemPrompt}
	}
	final, results := compose.Pipeline(r.Context(), s.engine, stages, req.Input, s.composeOptions())
	s.writeJSON(w, http.StatusOK, map[string]any{"final": final, "results": results})
}

func (s *Server) composeOptions() func(o *compose.Options) {
	return func(o *compose.Options) { o.Logger = s.logger }
}

// checkQuota enforces the entitlement seam; on denial it writes 429 and
// reports false.
func (s *Server) checkQuota(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := r.Header.Get("X-User-ID")
	if user == "" {
		user = "anonymous"
	}
	allowed, err := s.entitlements.Allow(r.Context(), user)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("entitlement check failed: %w", err))
		return user, false
	}
	if !allowed {
		s.writeError(w, http.StatusTooManyRequests, errors.New("quota exhausted"))
		return user, false
	}
	return user, true
}

func (s *Server) recordUsage(r *http.Request, user string, res agent.Result) {
	if !res.Success || res.Usage == nil {
		return
	}
	if err := s.entitlements.Record(r.Context(), user, *res.Usage); err != nil {
		s.logger.Warn("usage record failed", "user", user, "error", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps registry precondition failures onto deterministic status
// codes; everything else (including engine-level failures) stays 200 with
// the failure encoded in the body.
func statusFor(res agent.Result) int {
	switch res.ErrorCode {
	case orchestrator.ErrCodeAgentNotFound:
		return http.StatusNotFound
	case orchestrator.ErrCodeNoCurrentAgent:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}
