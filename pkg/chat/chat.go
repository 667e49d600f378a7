// Package chat provides a unified interface for chat completion providers.
//
// The package abstracts the assistant-reply generation step behind a single
// Completer interface, enabling seamless switching between OpenAI and any
// OpenAI-compatible backend without changing pipeline code.
//
// Generation parameters (model, max tokens, temperature) are fixed at
// construction time; callers supply only the conversation.
//
// Example usage:
//
//	provider, _ := chat.NewOpenAI(
//	    chat.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    chat.WithModel("gpt-4o"),
//	)
//	defer provider.Close()
//
//	reply, _ := provider.Complete(ctx, []chat.Message{
//	    chat.NewUserMessage("Hello!"),
//	})
package chat

import "context"

// Completer defines the chat completion provider interface.
// All implementations must satisfy this interface for seamless provider switching.
type Completer interface {
	// Complete generates the assistant's reply from an ordered conversation.
	Complete(ctx context.Context, messages []Message) (*Reply, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Reply is a completed assistant response.
type Reply struct {
	// Text is the assistant's reply content.
	Text string

	// FinishReason indicates why generation stopped (stop, length).
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
