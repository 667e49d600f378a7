package turn

import (
	"context"
	"errors"
	"testing"

	"github.com/converselabs/go-converse/pkg/chat"
	"github.com/converselabs/go-converse/pkg/stt"
	"github.com/converselabs/go-converse/pkg/tts"
)

func newTestPipeline(t stt.Transcriber, c chat.Completer, s tts.Synthesizer) *Pipeline {
	return NewPipeline(t, c, s, nil)
}

func TestTextTurn(t *testing.T) {
	completer := chat.NewMock("Hi there")
	synth := tts.NewMock([]byte{0x01, 0x02})
	p := newTestPipeline(stt.NewMock(""), completer, synth)

	resp, err := p.Process(context.Background(), &Request{Text: "Hello"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if resp.Transcription != "Hello" {
		t.Errorf("transcription = %q, want %q", resp.Transcription, "Hello")
	}
	if resp.GeneratedText != "Hi there" {
		t.Errorf("generated_text = %q, want %q", resp.GeneratedText, "Hi there")
	}
	if resp.GeneratedAudio != nil {
		t.Errorf("generated_audio = %v, want nil", *resp.GeneratedAudio)
	}
	if synth.Calls() != 0 {
		t.Errorf("synthesizer invoked %d times without isAudioResponse", synth.Calls())
	}
}

func TestTextTurnWithAudioResponse(t *testing.T) {
	synth := tts.NewMock([]byte{0x01, 0x02})
	p := newTestPipeline(stt.NewMock(""), chat.NewMock("Hi there"), synth)

	resp, err := p.Process(context.Background(), &Request{Text: "Hello", AudioResponse: true})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if resp.GeneratedAudio == nil {
		t.Fatal("generated_audio is nil, want base64 audio")
	}
	if *resp.GeneratedAudio != "AQI=" {
		t.Errorf("generated_audio = %q, want %q", *resp.GeneratedAudio, "AQI=")
	}
	if synth.LastText() != "Hi there" {
		t.Errorf("synthesized %q, want the reply text", synth.LastText())
	}
}

func TestTextTurnAppendsUserMessage(t *testing.T) {
	completer := chat.NewMock("ok")
	p := newTestPipeline(stt.NewMock(""), completer, tts.NewMock(nil))

	history := []chat.Message{
		chat.NewSystemMessage("be brief"),
		chat.NewUserMessage("hi"),
		chat.NewAssistantMessage("hello"),
	}
	before := make([]chat.Message, len(history))
	copy(before, history)

	_, err := p.Process(context.Background(), &Request{Text: "next", Messages: history})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got := completer.LastConversation()
	if len(got) != 4 {
		t.Fatalf("conversation length = %d, want 4", len(got))
	}
	if got[3].Role != chat.RoleUser || got[3].Content != "next" {
		t.Errorf("appended message = %+v, want user %q", got[3], "next")
	}
	for i := range before {
		if history[i] != before[i] {
			t.Errorf("caller history mutated at %d: %+v", i, history[i])
		}
	}
}

func TestAudioTurn(t *testing.T) {
	transcriber := stt.NewMock("what I heard")
	completer := chat.NewMock("never used")
	synth := tts.NewMock([]byte{0xFF})
	p := newTestPipeline(transcriber, completer, synth)

	resp, err := p.Process(context.Background(), &Request{Audio: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if resp.Transcription != "what I heard" {
		t.Errorf("transcription = %q", resp.Transcription)
	}
	if resp.GeneratedText != resp.Transcription {
		t.Errorf("generated_text = %q, want transcription %q", resp.GeneratedText, resp.Transcription)
	}
	if resp.GeneratedAudio != nil {
		t.Error("audio turn produced generated_audio")
	}
	if completer.Calls() != 0 {
		t.Errorf("completer invoked %d times on audio turn", completer.Calls())
	}
}

func TestAudioTurnIgnoresAudioResponseFlag(t *testing.T) {
	synth := tts.NewMock([]byte{0xFF})
	completer := chat.NewMock("never used")
	p := newTestPipeline(stt.NewMock("heard"), completer, synth)

	resp, err := p.Process(context.Background(), &Request{Audio: []byte{1}, AudioResponse: true})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if resp.GeneratedAudio != nil {
		t.Error("audio turn synthesized despite transcription-only contract")
	}
	if synth.Calls() != 0 || completer.Calls() != 0 {
		t.Errorf("downstream adapters invoked: synth=%d completer=%d", synth.Calls(), completer.Calls())
	}
}

func TestTranscriberIdempotent(t *testing.T) {
	transcriber := stt.NewMock("same words")
	p := newTestPipeline(transcriber, chat.NewMock(""), tts.NewMock(nil))

	audio := []byte{9, 9, 9}
	first, err := p.Process(context.Background(), &Request{Audio: audio})
	if err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	second, err := p.Process(context.Background(), &Request{Audio: audio})
	if err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	if first.Transcription != second.Transcription {
		t.Errorf("transcriptions differ: %q vs %q", first.Transcription, second.Transcription)
	}
}

func TestStageFailureClassification(t *testing.T) {
	engineErr := errors.New("quota exceeded")

	tests := []struct {
		name string
		req  *Request
		p    *Pipeline
		want Kind
	}{
		{
			name: "transcription failure",
			req:  &Request{Audio: []byte{1}},
			p:    newTestPipeline(stt.WithError(engineErr), chat.NewMock(""), tts.NewMock(nil)),
			want: KindTranscription,
		},
		{
			name: "completion failure",
			req:  &Request{Text: "hi"},
			p:    newTestPipeline(stt.NewMock(""), chat.WithError(engineErr), tts.NewMock(nil)),
			want: KindCompletion,
		},
		{
			name: "synthesis failure",
			req:  &Request{Text: "hi", AudioResponse: true},
			p:    newTestPipeline(stt.NewMock(""), chat.NewMock("reply"), tts.WithError(engineErr)),
			want: KindSynthesis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.p.Process(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if resp != nil {
				t.Errorf("expected no partial response, got %+v", resp)
			}
			if KindOf(err) != tt.want {
				t.Errorf("kind = %s, want %s", KindOf(err), tt.want)
			}
			if !errors.Is(err, engineErr) {
				t.Error("underlying engine error lost from chain")
			}
		})
	}
}

func TestSynthesisFailureSkipsNoStages(t *testing.T) {
	// completion must have run before synthesis fails
	completer := chat.NewMock("reply")
	p := newTestPipeline(stt.NewMock(""), completer, tts.WithError(errors.New("auth")))

	_, err := p.Process(context.Background(), &Request{Text: "hi", AudioResponse: true})
	if err == nil {
		t.Fatal("expected error")
	}
	if completer.Calls() != 1 {
		t.Errorf("completer calls = %d, want 1", completer.Calls())
	}
}
