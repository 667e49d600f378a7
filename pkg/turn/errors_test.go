package turn

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	inner := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validationf("bad field"), KindValidation},
		{"transcription", Wrap(KindTranscription, "stt", inner), KindTranscription},
		{"completion", Wrap(KindCompletion, "llm", inner), KindCompletion},
		{"synthesis", Wrap(KindSynthesis, "tts", inner), KindSynthesis},
		{"plain error is internal", inner, KindInternal},
		{"wrapped turn error survives fmt.Errorf", fmt.Errorf("handler: %w", Wrap(KindCompletion, "llm", inner)), KindCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("engine down")
	err := Wrap(KindSynthesis, "synthesize reply", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to find wrapped engine error")
	}
	if err.Error() == inner.Error() {
		t.Error("classified error should add context to the engine error")
	}
}

func TestKindString(t *testing.T) {
	if KindValidation.String() != "validation" {
		t.Errorf("KindValidation.String() = %q", KindValidation.String())
	}
	if Kind(99).String() != "internal" {
		t.Errorf("unknown kind should read as internal, got %q", Kind(99).String())
	}
}
