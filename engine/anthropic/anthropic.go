// Package anthropic implements engine.Engine on top of the Anthropic
// Messages API. Because the Messages API is stateless, the adapter emulates
// resumable sessions with an in-process transcript table: each success result
// carries a session id that later requests can pass as Config.Resume.
//
// Tool governance fields (allowed/disallowed tools, MCP servers) are accepted
// but not enforced here; this adapter only relays text turns.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/internal/transcript"
)

// Pricing holds USD cost per million tokens for one model.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// defaultPricing covers the models the adapter selects by default. Unknown
// models report a zero cost rather than guessing.
var defaultPricing = map[string]Pricing{
	string(anthropic.ModelClaudeSonnet4_20250514):  {InputPerMTok: 3.0, OutputPerMTok: 15.0},
	string(anthropic.ModelClaude3_5Sonnet20241022): {InputPerMTok: 3.0, OutputPerMTok: 15.0},
	string(anthropic.ModelClaude3_5Haiku20241022):  {InputPerMTok: 0.8, OutputPerMTok: 4.0},
}

// Options configures the Anthropic engine adapter.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	Pricing     map[string]Pricing
}

// Engine adapts the Anthropic Messages API to the engine.Engine contract.
type Engine struct {
	client      *anthropic.Client
	opts        Options
	transcripts *transcript.Store
}

var _ engine.Engine = (*Engine)(nil)

// New creates an Anthropic engine using the official client.
func New(optFns ...func(o *Options)) *Engine {
	opts := applyOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Engine{client: &client, opts: opts, transcripts: transcript.NewStore()}
}

// NewFromClient creates an Anthropic engine from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Engine {
	return &Engine{client: client, opts: applyOptions(optFns), transcripts: transcript.NewStore()}
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
		Pricing:     defaultPricing,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Submit implements engine.Engine. It performs exactly one Messages API call
// per invocation and never retries; API failures surface on the error channel.
func (e *Engine) Submit(ctx context.Context, req engine.Request) (<-chan engine.Event, <-chan error) {
	out := make(chan engine.Event, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		sessionID := req.Config.Resume
		var history transcript.Transcript
		if sessionID != "" {
			var err error
			history, err = e.transcripts.Resume(sessionID)
			if err != nil {
				errCh <- fmt.Errorf("resume session %s: %w", sessionID, err)
				return
			}
		} else {
			sessionID = uuid.NewString()
		}

		if req.Config.MaxTurns > 0 && history.NumTurns >= req.Config.MaxTurns {
			out <- engine.ResultEvent{
				Subtype:   engine.SubtypeMaxTurns,
				SessionID: sessionID,
				NumTurns:  history.NumTurns,
				Errors:    []string{fmt.Sprintf("turn budget of %d exhausted", req.Config.MaxTurns)},
			}
			return
		}

		model := e.opts.Model
		if req.Config.Model != "" {
			model = anthropic.Model(req.Config.Model)
		}

		params := anthropic.MessageNewParams{
			Model:       model,
			Messages:    buildMessages(history, req.Prompt),
			MaxTokens:   e.opts.MaxTokens,
			Temperature: anthropic.Float(e.opts.Temperature),
		}
		if req.Config.SystemPrompt != "" {
			params.System = []anthropic.TextBlockParam{{Text: req.Config.SystemPrompt}}
		}

		resp, err := e.client.Messages.New(ctx, params)
		if err != nil {
			errCh <- fmt.Errorf("anthropic api error: %w", err)
			return
		}

		var text string
		var toolUses []engine.ToolUse
		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				text += block.AsText().Text
			case "tool_use":
				tu := block.AsToolUse()
				input, _ := json.Marshal(tu.Input)
				toolUses = append(toolUses, engine.ToolUse{ID: tu.ID, Name: tu.Name, Input: input})
			}
		}
		out <- engine.AssistantEvent{Text: text, ToolUses: toolUses}

		numTurns := e.transcripts.Record(sessionID, req.Prompt, text)
		usage := engine.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		}
		out <- engine.ResultEvent{
			Subtype:      engine.SubtypeSuccess,
			SessionID:    sessionID,
			NumTurns:     numTurns,
			Usage:        usage,
			TotalCostUSD: e.cost(string(model), usage),
		}
	}()

	return out, errCh
}

func (e *Engine) cost(model string, usage engine.Usage) float64 {
	p, ok := e.opts.Pricing[model]
	if !ok {
		return 0
	}
	return float64(usage.InputTokens)/1e6*p.InputPerMTok + float64(usage.OutputTokens)/1e6*p.OutputPerMTok
}

// buildMessages converts the recorded transcript plus the new prompt into
// Messages API params.
func buildMessages(history transcript.Transcript, prompt string) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history.Turns)+1)
	for _, turn := range history.Turns {
		switch turn.Role {
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
		}
	}
	return append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
}
