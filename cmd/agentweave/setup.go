package main

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/agentweave/config"
	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/engine/anthropic"
	"github.com/hupe1980/agentweave/engine/openai"
)

// loadConfig reads the config file if given, otherwise the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildEngine selects the query engine backend from configuration.
func buildEngine(cfg *config.Config) (engine.Engine, error) {
	switch cfg.Engine.Provider {
	case config.ProviderAnthropic:
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.Engine.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Engine.Model)
			}
			o.APIKey = cfg.Engine.APIKey
		}), nil
	case config.ProviderOpenAI:
		return openai.New(func(o *openai.Options) {
			if cfg.Engine.Model != "" {
				o.Model = cfg.Engine.Model
			}
			o.APIKey = cfg.Engine.APIKey
		}), nil
	case config.ProviderMock:
		return engine.NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine provider %q", cfg.Engine.Provider)
	}
}
