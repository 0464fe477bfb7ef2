// Package orchestrator provides the agent registry: long-lived, explicitly
// named agents that can be executed directly and hand work off to each other
// with an auditable handoff log.
//
// Unlike the compose package, which builds throwaway agents per call, the
// orchestrator preserves each registered agent's session reference across
// executions, so repeated Execute calls against the same name continue the
// same conversation.
//
// All registry state (agent table, handoff history, current-agent cursor) is
// guarded by a single mutex so one Orchestrator may be shared by concurrent
// callers.
package orchestrator
