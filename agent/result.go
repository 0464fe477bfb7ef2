package agent

import "github.com/hupe1980/agentweave/engine"

// Error codes attached to failed Results. Engine-reported failures carry the
// terminal event's subtype instead.
const (
	// ErrCodeEngine marks a transport-level failure of the engine call itself.
	ErrCodeEngine = "engine_error"
	// ErrCodeNoResult marks an event sequence that ended without a terminal event.
	ErrCodeNoResult = "no_result"
)

// Result is the immutable outcome of one agent invocation. On success the
// error fields are empty; on failure Success is false and ErrorCode /
// ErrorMessage describe the cause.
type Result struct {
	Success      bool          `json:"success"`
	Text         string        `json:"result,omitempty"`
	SessionID    string        `json:"session_id,omitempty"`
	NumTurns     int           `json:"num_turns,omitempty"`
	Usage        *engine.Usage `json:"usage,omitempty"`
	TotalCostUSD float64       `json:"total_cost_usd,omitempty"`
	ErrorCode    string        `json:"error_code,omitempty"`
	ErrorMessage string        `json:"error,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
}

// Failure constructs a failed Result with the given code and message.
func Failure(code, message string) Result {
	return Result{ErrorCode: code, ErrorMessage: message}
}
