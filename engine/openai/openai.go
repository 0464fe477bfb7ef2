// Package openai implements engine.Engine on top of the OpenAI Chat
// Completions API. Like the anthropic adapter it emulates resumable sessions
// with an in-process transcript table since the Chat Completions API is
// stateless. Tool governance fields are accepted but not enforced; the
// adapter relays text turns only.
package openai

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/agentweave/engine"
	"github.com/hupe1980/agentweave/internal/transcript"
)

// Pricing holds USD cost per million tokens for one model.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

var defaultPricing = map[string]Pricing{
	openai.ChatModelGPT4o:     {InputPerMTok: 2.5, OutputPerMTok: 10.0},
	openai.ChatModelGPT4oMini: {InputPerMTok: 0.15, OutputPerMTok: 0.6},
}

// Options configures the OpenAI engine adapter.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
	Pricing             map[string]Pricing
}

// Engine adapts the OpenAI Chat Completions API to the engine.Engine contract.
type Engine struct {
	client      *openai.Client
	opts        Options
	transcripts *transcript.Store
}

var _ engine.Engine = (*Engine)(nil)

// New creates an OpenAI engine using the official client.
func New(optFns ...func(o *Options)) *Engine {
	opts := applyOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Engine{client: &client, opts: opts, transcripts: transcript.NewStore()}
}

// NewFromClient creates an OpenAI engine from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Engine {
	return &Engine{client: client, opts: applyOptions(optFns), transcripts: transcript.NewStore()}
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
		Pricing:             defaultPricing,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Submit implements engine.Engine with a single non-retried API call.
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
			model = req.Config.Model
		}

		params := openai.ChatCompletionNewParams{
			Model:               model,
			Messages:            buildMessages(req.Config.SystemPrompt, history, req.Prompt),
			Temperature:         openai.Float(e.opts.Temperature),
			MaxCompletionTokens: openai.Int(e.opts.MaxCompletionTokens),
		}

		resp, err := e.client.Chat.Completions.New(ctx, params)
		if err != nil {
			errCh <- fmt.Errorf("openai api error: %w", err)
			return
		}
		if len(resp.Choices) == 0 {
			errCh <- fmt.Errorf("openai api returned no choices")
			return
		}

		text := resp.Choices[0].Message.Content
		out <- engine.AssistantEvent{Text: text}

		numTurns := e.transcripts.Record(sessionID, req.Prompt, text)
		usage := engine.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		}
		out <- engine.ResultEvent{
			Subtype:      engine.SubtypeSuccess,
			SessionID:    sessionID,
			NumTurns:     numTurns,
			Usage:        usage,
			TotalCostUSD: e.cost(model, usage),
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

func buildMessages(systemPrompt string, history transcript.Transcript, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history.Turns)+2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	for _, turn := range history.Turns {
		switch turn.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(turn.Text))
		default:
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	return append(messages, openai.UserMessage(prompt))
}
