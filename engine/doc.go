// Package engine defines the contract between AgentWeave and the external
// conversational query engine. The engine is treated as an opaque dependency:
// given a prompt and a Config it produces a lazy, finite sequence of typed
// events terminated by exactly one ResultEvent.
//
// The package ships two things:
//
//   - The Engine interface plus the closed Event variant type consumed by the
//     agent and compose packages.
//   - MockEngine, a deterministic in-memory implementation emitting scripted
//     event sequences, used throughout the test suite and for local dry runs.
//
// Real adapters live in the engine/anthropic and engine/openai subpackages.
package engine
