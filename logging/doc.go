// Package logging provides a minimal logging interface and adapters for AgentWeave.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that agents, the orchestrator and the HTTP server use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(logging.DefaultLoggerConfig())
//	a := agent.New(cfg, eng, func(o *agent.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
