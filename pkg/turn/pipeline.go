package turn

import (
	"context"
	"log/slog"

	"github.com/converselabs/go-converse/pkg/chat"
	"github.com/converselabs/go-converse/pkg/stt"
	"github.com/converselabs/go-converse/pkg/tts"
)

// Pipeline orchestrates one conversation turn across the external engines.
// It holds no per-request state and is safe for concurrent use; adapters
// are constructed once at startup and injected here.
type Pipeline struct {
	transcriber stt.Transcriber
	completer   chat.Completer
	synthesizer tts.Synthesizer
	logger      *slog.Logger
}

// NewPipeline creates a pipeline over the given adapters.
// A nil logger falls back to slog.Default().
func NewPipeline(transcriber stt.Transcriber, completer chat.Completer, synthesizer tts.Synthesizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		transcriber: transcriber,
		completer:   completer,
		synthesizer: synthesizer,
		logger:      logger.With("component", "turn.pipeline"),
	}
}

// Process runs a validated request through the pipeline stages.
// Stages are strictly sequential and the first failure aborts the turn;
// failures come back classified for the boundary to render.
func (p *Pipeline) Process(ctx context.Context, req *Request) (*Response, error) {
	if req.IsAudioTurn() {
		return p.processAudioTurn(ctx, req)
	}
	return p.processTextTurn(ctx, req)
}

// processAudioTurn transcribes the audio and returns it without generating
// a reply. Synthesis never runs here, even when requested: the client is
// expected to confirm the transcription and re-submit it as a text turn.
func (p *Pipeline) processAudioTurn(ctx context.Context, req *Request) (*Response, error) {
	if req.AudioResponse {
		p.logger.Warn("isAudioResponse ignored for audio turn; transcription is returned without synthesis")
	}

	result, err := p.transcriber.Transcribe(ctx, req.Audio)
	if err != nil {
		return nil, Wrap(KindTranscription, "transcribe audio", err)
	}

	p.logger.Debug("audio turn complete",
		"audio_bytes", len(req.Audio),
		"transcript_chars", len(result.Text),
		"latency_ms", result.LatencyMs,
	)

	return NewAudioTurnResponse(result.Text), nil
}

// processTextTurn appends the user text to the conversation, generates the
// reply, and synthesizes it when an audio response was requested.
func (p *Pipeline) processTextTurn(ctx context.Context, req *Request) (*Response, error) {
	conversation := chat.Append(req.Messages, chat.NewUserMessage(req.Text))

	reply, err := p.completer.Complete(ctx, conversation)
	if err != nil {
		return nil, Wrap(KindCompletion, "generate reply", err)
	}

	var audio []byte
	if req.AudioResponse {
		result, err := p.synthesizer.Synthesize(ctx, reply.Text)
		if err != nil {
			return nil, Wrap(KindSynthesis, "synthesize reply", err)
		}
		audio = result.Audio
	}

	p.logger.Debug("text turn complete",
		"history", len(req.Messages),
		"reply_chars", len(reply.Text),
		"audio_response", req.AudioResponse,
		"latency_ms", reply.LatencyMs,
	)

	return NewTextTurnResponse(req.Text, reply.Text, audio), nil
}
