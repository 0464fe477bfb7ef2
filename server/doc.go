// Package server exposes the orchestration core over HTTP: a synchronous
// run endpoint, an SSE streaming endpoint terminated by a sentinel done
// event, and endpoints for the composition strategies and the registry.
//
// The server is boundary glue only. It checks the Entitlements seam before
// driving the core and records usage afterwards; the core itself never calls
// the entitlement or persistence collaborators. Session continuity across
// requests goes through the session.Store seam keyed by a caller-chosen
// conversation key.
//
// Status mapping is deterministic: registry precondition failures map to
// 404 (unknown agent) or 409 (no current agent); engine-level failures are
// returned with status 200 and success=false in the body so clients always
// receive the full well-formed result structure.
package server
