package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAI implements Completer using the OpenAI chat completions API.
// Any OpenAI-compatible backend works via WithBaseURL.
type OpenAI struct {
	config *Config
	client *openai.Client
	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI completion provider.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: cfg.Logger.With("component", "chat.openai"),
	}, nil
}

// Complete generates the assistant's reply from an ordered conversation.
func (o *OpenAI) Complete(ctx context.Context, messages []Message) (*Reply, error) {
	if len(messages) == 0 {
		return nil, WrapError(providerOpenAI, ErrNoMessages)
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Messages:    toOpenAIMessages(messages),
		MaxTokens:   o.config.MaxTokens,
		Temperature: float32(o.config.Temperature),
	})
	if err != nil {
		return nil, WrapError(providerOpenAI, fmt.Errorf("completion request: %w", err))
	}

	if len(resp.Choices) == 0 {
		return nil, WrapError(providerOpenAI, ErrEmptyReply)
	}

	latency := time.Since(start).Milliseconds()
	choice := resp.Choices[0]

	o.logger.Debug("generated reply",
		"messages", len(messages),
		"chars", len(choice.Message.Content),
		"finish_reason", choice.FinishReason,
		"latency_ms", latency,
		"model", resp.Model,
	)

	return &Reply{
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

// Health checks API connectivity and API key validity.
func (o *OpenAI) Health(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return WrapError(providerOpenAI, fmt.Errorf("health check: %w", err))
	}
	return nil
}

// Close releases resources held by the provider.
func (o *OpenAI) Close() error {
	return nil
}

// Model returns the configured completion model.
func (o *OpenAI) Model() string {
	return o.config.Model
}

// toOpenAIMessages converts conversation messages to the wire format.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}

// Verify OpenAI implements Completer at compile time.
var _ Completer = (*OpenAI)(nil)
