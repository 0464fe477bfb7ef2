package agent

import (
	"errors"
	"time"

	"github.com/hupe1980/agentweave/engine"
)

// DefaultMaxTurns is applied when Config.MaxTurns is unset.
const DefaultMaxTurns = 10

// Config is the immutable specification of an agent. It is copied at
// construction time and never mutated afterwards.
type Config struct {
	// Name uniquely identifies the agent within an orchestrator registry.
	Name string
	// SystemPrompt is the agent's standing instruction set.
	SystemPrompt string
	// Model optionally overrides the engine's default model.
	Model string
	// MaxTurns bounds assistant turns per invocation; defaults to DefaultMaxTurns.
	MaxTurns int
	// PermissionMode defaults to engine.PermissionDefault.
	PermissionMode engine.PermissionMode
	// AllowedTools restricts tool use. When both AllowedTools and
	// DisallowedTools are given, the allow-list wins and the deny-list is
	// dropped at request-build time.
	AllowedTools []string
	// DisallowedTools blocks the named tools.
	DisallowedTools []string
	// MCPServers passes external tool server configurations through to the
	// engine; the agent never connects to them itself.
	MCPServers map[string]engine.MCPServerConfig
	// Timeout optionally bounds each invocation's wall-clock time. Zero
	// means no deadline. This is a hardening extension over the original
	// design, which let invocations run unbounded.
	Timeout time.Duration
}

// Validate reports whether the config is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("agent config: name is required")
	}
	if c.MaxTurns < 0 {
		return errors.New("agent config: max turns must not be negative")
	}
	return nil
}

// withDefaults returns a copy with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.MaxTurns == 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.PermissionMode == "" {
		c.PermissionMode = engine.PermissionDefault
	}
	return c
}

// engineConfig maps the agent config onto a per-invocation engine.Config,
// resolving tool list precedence and attaching the resume token.
func (c Config) engineConfig(resume string) engine.Config {
	allowed, disallowed := c.AllowedTools, c.DisallowedTools
	if len(allowed) > 0 && len(disallowed) > 0 {
		disallowed = nil
	}
	return engine.Config{
		Model:           c.Model,
		SystemPrompt:    c.SystemPrompt,
		MaxTurns:        c.MaxTurns,
		PermissionMode:  c.PermissionMode,
		AllowedTools:    allowed,
		DisallowedTools: disallowed,
		MCPServers:      c.MCPServers,
		Resume:          resume,
	}
}
