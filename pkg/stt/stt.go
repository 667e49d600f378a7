// Package stt provides a unified interface for speech-to-text providers.
//
// The package abstracts audio transcription behind a single Transcriber
// interface so callers can swap backends (OpenAI Whisper, local engines)
// without changing pipeline code.
//
// Example usage:
//
//	provider, _ := stt.NewWhisper(
//	    stt.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Transcribe(ctx, audioBytes)
//	// result.Text contains the recognized speech
package stt

import "context"

// Transcriber defines the speech-to-text provider interface.
// All implementations must satisfy this interface for seamless provider switching.
type Transcriber interface {
	// Transcribe converts an in-memory audio buffer to text.
	// The audio is a complete recording, not a stream.
	Transcribe(ctx context.Context, audio []byte) (*Result, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Result represents a completed transcription.
type Result struct {
	// Text is the recognized speech.
	Text string

	// Language is the language hint the engine was given.
	Language string

	// LatencyMs is the round-trip time in milliseconds.
	LatencyMs int64
}
