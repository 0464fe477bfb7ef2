// Package compose provides stateless composition strategies over ad hoc
// agents: sequential chains, parallel fan-outs, consensus voting,
// transforming pipelines and supervisor delegation.
//
// Every strategy constructs fresh, unregistered agents per call and never
// reuses session state across invocations; callers wanting long-lived agents
// with session continuity should use the orchestrator package instead.
//
// Agent-level failures never surface as Go errors: chains and pipelines stop
// early and return what they collected, fan-outs and votes record the
// failure in that agent's own result slot and keep going.
package compose
