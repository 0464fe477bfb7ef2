package engine

import "encoding/json"

// Event is the closed variant type emitted by an Engine. Exactly two kinds
// exist: AssistantEvent (an intermediate assistant turn) and ResultEvent
// (the single terminal event). The unexported marker method seals the set so
// consumers can match exhaustively.
type Event interface {
	event()
}

// ToolUse records a tool invocation notice surfaced inside an assistant turn.
type ToolUse struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// AssistantEvent carries the content of one assistant turn: zero or more text
// segments joined into Text, plus any tool invocation notices.
type AssistantEvent struct {
	Text     string    `json:"text,omitempty"`
	ToolUses []ToolUse `json:"tool_uses,omitempty"`
}

func (AssistantEvent) event() {}

// Subtype classifies the terminal outcome of an invocation.
type Subtype string

const (
	// SubtypeSuccess marks a completed invocation.
	SubtypeSuccess Subtype = "success"
	// SubtypeError marks a generic engine-reported failure.
	SubtypeError Subtype = "error"
	// SubtypeMaxTurns marks an invocation stopped by the turn budget.
	SubtypeMaxTurns Subtype = "error_max_turns"
	// SubtypeDuringExecution marks a failure raised mid-turn.
	SubtypeDuringExecution Subtype = "error_during_execution"
)

// Usage captures token counts for one invocation.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ResultEvent is the single terminal event of an invocation. SessionID
// identifies the conversation for later resumption. On failure Errors may
// carry engine-level sub-errors.
type ResultEvent struct {
	Subtype      Subtype  `json:"subtype"`
	SessionID    string   `json:"session_id"`
	NumTurns     int      `json:"num_turns"`
	Usage        Usage    `json:"usage"`
	TotalCostUSD float64  `json:"total_cost_usd,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

func (ResultEvent) event() {}

// Success reports whether the invocation completed without an error subtype.
func (r ResultEvent) Success() bool { return r.Subtype == SubtypeSuccess }
