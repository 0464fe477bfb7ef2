package engine

import (
	"context"
)

// PermissionMode controls how the query engine handles privileged tool
// actions during a turn. Values follow the engine's wire strings.
type PermissionMode string

const (
	// PermissionDefault prompts for every privileged action.
	PermissionDefault PermissionMode = "default"
	// PermissionAcceptEdits auto-approves file edit actions.
	PermissionAcceptEdits PermissionMode = "acceptEdits"
	// PermissionPlan restricts the engine to read-only planning.
	PermissionPlan PermissionMode = "plan"
	// PermissionBypass disables permission checks entirely.
	PermissionBypass PermissionMode = "bypassPermissions"
)

// MCPServerConfig describes an external tool server made available to the
// query engine. The core never connects to these servers itself; the map is
// passed through opaquely. Either Command (stdio transport) or URL (remote
// transport) is set.
type MCPServerConfig struct {
	Command string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Type    string            `json:"type,omitempty" yaml:"type,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Config carries the per-invocation engine configuration. A zero Config is
// valid: the engine applies its own defaults for unset fields.
type Config struct {
	// Model selects the underlying model; empty means engine default.
	Model string `json:"model,omitempty"`
	// SystemPrompt is prepended to the conversation.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// MaxTurns bounds the number of assistant turns in one invocation.
	MaxTurns int `json:"max_turns,omitempty"`
	// PermissionMode controls privileged tool handling.
	PermissionMode PermissionMode `json:"permission_mode,omitempty"`
	// AllowedTools restricts tool use to the named tools. When both
	// AllowedTools and DisallowedTools are set the allow-list wins and the
	// deny-list is ignored.
	AllowedTools []string `json:"allowed_tools,omitempty"`
	// DisallowedTools blocks the named tools.
	DisallowedTools []string `json:"disallowed_tools,omitempty"`
	// MCPServers maps server names to external tool server configurations.
	MCPServers map[string]MCPServerConfig `json:"mcp_servers,omitempty"`
	// Resume restores a prior conversation identified by its session id.
	Resume string `json:"resume,omitempty"`
}

// Request bundles the user prompt with its invocation configuration.
type Request struct {
	Prompt string `json:"prompt"`
	Config Config `json:"config"`
}

// Engine is the single call boundary to the external conversational query
// engine. Submit returns immediately; the event channel delivers the lazy
// event sequence in emission order and is closed after the terminal
// ResultEvent (or after a transport failure, in which case the error channel
// carries exactly one error). Implementations never retry internally.
type Engine interface {
	Submit(ctx context.Context, req Request) (<-chan Event, <-chan error)
}
