package stt

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const providerWhisper = "whisper"

// Whisper implements Transcriber using the OpenAI audio transcription API.
type Whisper struct {
	config *Config
	client *openai.Client
	logger *slog.Logger
}

// NewWhisper creates a new Whisper transcription provider.
func NewWhisper(opts ...Option) (*Whisper, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Whisper{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: cfg.Logger.With("component", "stt.whisper"),
	}, nil
}

// Transcribe converts an in-memory audio buffer to text.
func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (*Result, error) {
	if len(audio) == 0 {
		return nil, WrapError(providerWhisper, ErrEmptyAudio)
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.config.Model,
		FilePath: w.config.FileName,
		Reader:   bytes.NewReader(audio),
		Language: w.config.Language,
	})
	if err != nil {
		return nil, WrapError(providerWhisper, fmt.Errorf("transcription request: %w", err))
	}

	latency := time.Since(start).Milliseconds()

	w.logger.Debug("transcribed audio",
		"bytes", len(audio),
		"chars", len(resp.Text),
		"latency_ms", latency,
		"model", w.config.Model,
	)

	return &Result{
		Text:      resp.Text,
		Language:  w.config.Language,
		LatencyMs: latency,
	}, nil
}

// Health checks API connectivity and API key validity.
func (w *Whisper) Health(ctx context.Context) error {
	if _, err := w.client.ListModels(ctx); err != nil {
		return WrapError(providerWhisper, fmt.Errorf("health check: %w", err))
	}
	return nil
}

// Close releases resources held by the provider.
func (w *Whisper) Close() error {
	return nil
}

// Model returns the configured transcription model.
func (w *Whisper) Model() string {
	return w.config.Model
}

// Verify Whisper implements Transcriber at compile time.
var _ Transcriber = (*Whisper)(nil)
