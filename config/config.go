// Package config loads the file configuration consumed by the agentweave
// CLI and server: listen address, engine provider selection and the named
// agent definitions made available over the transport surface.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/engine"
)

// Engine provider names accepted in EngineConfig.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Agents []AgentDef   `yaml:"agents"`
}

// ServerConfig configures the HTTP transport surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EngineConfig selects and configures the query engine backend.
type EngineConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// APIKey may be left empty to fall back to the provider SDK's own
	// environment variable lookup.
	APIKey string `yaml:"api_key"`
}

// AgentDef is the YAML shape of one named agent definition.
type AgentDef struct {
	Name            string                            `yaml:"name"`
	SystemPrompt    string                            `yaml:"system_prompt"`
	Model           string                            `yaml:"model"`
	MaxTurns        int                               `yaml:"max_turns"`
	PermissionMode  string                            `yaml:"permission_mode"`
	AllowedTools    []string                          `yaml:"allowed_tools"`
	DisallowedTools []string                          `yaml:"disallowed_tools"`
	MCPServers      map[string]engine.MCPServerConfig `yaml:"mcp_servers"`
	Timeout         time.Duration                     `yaml:"timeout"`
}

// AgentConfig converts the definition into the runtime agent configuration.
func (d AgentDef) AgentConfig() agent.Config {
	return agent.Config{
		Name:            d.Name,
		SystemPrompt:    d.SystemPrompt,
		Model:           d.Model,
		MaxTurns:        d.MaxTurns,
		PermissionMode:  engine.PermissionMode(d.PermissionMode),
		AllowedTools:    d.AllowedTools,
		DisallowedTools: d.DisallowedTools,
		MCPServers:      d.MCPServers,
		Timeout:         d.Timeout,
	}
}

// Default returns the baseline configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Engine: EngineConfig{Provider: ProviderMock},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates raw YAML bytes, filling in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider selection and agent definitions.
func (c *Config) Validate() error {
	switch c.Engine.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("config: unknown engine provider %q", c.Engine.Provider)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server addr must not be empty")
	}

	seen := make(map[string]struct{}, len(c.Agents))
	for _, def := range c.Agents {
		if err := def.AgentConfig().Validate(); err != nil {
			return fmt.Errorf("config: agent %q: %w", def.Name, err)
		}
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("config: duplicate agent name %q", def.Name)
		}
		seen[def.Name] = struct{}{}
	}
	return nil
}
