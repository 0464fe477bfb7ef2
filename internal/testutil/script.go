package testutil

import "github.com/hupe1980/agentweave/engine"

// SuccessScript returns an assistant turn followed by a success terminal.
func SuccessScript(text, sessionID string) []engine.Event {
	return []engine.Event{
		engine.AssistantEvent{Text: text},
		engine.ResultEvent{
			Subtype:   engine.SubtypeSuccess,
			SessionID: sessionID,
			NumTurns:  1,
			Usage:     engine.Usage{InputTokens: 10, OutputTokens: len(text)},
		},
	}
}

// FailureScript returns an assistant turn followed by a failing terminal of
// the given subtype.
func FailureScript(subtype engine.Subtype, sessionID string, errs ...string) []engine.Event {
	return []engine.Event{
		engine.AssistantEvent{Text: "partial output"},
		engine.ResultEvent{
			Subtype:   subtype,
			SessionID: sessionID,
			NumTurns:  1,
			Errors:    errs,
		},
	}
}

// NoResultScript returns assistant turns that are never terminated by a
// result event, exercising the exhausted-without-result path.
func NoResultScript(texts ...string) []engine.Event {
	events := make([]engine.Event, 0, len(texts))
	for _, t := range texts {
		events = append(events, engine.AssistantEvent{Text: t})
	}
	return events
}
