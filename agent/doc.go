// Package agent provides the runtime handle driving one conversational
// session against an engine.Engine.
//
// An Agent owns an immutable Config and a single mutable session reference.
// Run drives a full invocation to completion and maps the engine's event
// sequence into a Result; Stream does the same while forwarding every raw
// event to the caller in emission order. Session continuity is explicit
// state: every successful invocation silently updates the agent's session
// reference, and callers wanting multi-turn continuity must reuse the same
// Agent instance (or replay a stored id via SetSessionID).
//
// No public operation lets an engine error escape as a Go error: every
// failure mode is encoded in the returned Result so composite callers always
// receive a well-formed structure.
package agent
