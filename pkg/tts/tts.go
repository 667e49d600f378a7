// Package tts provides a unified interface for text-to-speech providers.
//
// The package abstracts speech synthesis behind a single Synthesizer
// interface. The voice identity and voice settings are fixed at
// construction time; callers supply only the text to speak.
//
// Example usage:
//
//	provider, _ := tts.NewElevenLabs(
//	    tts.WithAPIKey(os.Getenv("ELEVENLABS_API_KEY")),
//	    tts.WithVoice("rachel"),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, "Hello world")
//	// result.Audio contains MP3 audio bytes
package tts

import (
	"context"
	"time"
)

// Synthesizer defines the TTS provider interface.
// All implementations must satisfy this interface for seamless provider switching.
type Synthesizer interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data.
	Audio []byte

	// MIME is the audio content type (e.g. audio/mpeg).
	MIME string

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the round-trip time in milliseconds.
	LatencyMs int64
}

// VoiceSettings controls voice characteristics for providers that support it.
// These settings affect the expressiveness and consistency of the generated speech.
type VoiceSettings struct {
	// Stability controls voice consistency (0.0-1.0).
	// Lower values = more expressive/variable, higher = more consistent.
	Stability float64

	// SimilarityBoost controls how closely the voice matches the original (0.0-1.0).
	// Higher values = closer to original voice sample.
	SimilarityBoost float64
}

// Duration estimates playback time for MP3 output at the default bitrate.
func (r *AudioResult) Duration() time.Duration {
	// 128kbps MP3 = 16000 bytes per second
	seconds := float64(len(r.Audio)) / 16000.0
	return time.Duration(seconds * float64(time.Second))
}
